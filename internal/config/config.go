// Package config loads hlsplay's configuration: strict-mode default, log
// level, and the S3 defaults the fetch collaborator falls back to when a
// command-line source doesn't specify them.
package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config is the merged result of defaults, a config file, environment
// variables (HLSPLAY_*), and command-line flags, in ascending priority.
type Config struct {
	StrictMode    bool   `mapstructure:"strict_mode"`
	LogLevel      string `mapstructure:"log_level"`
	S3Region      string `mapstructure:"s3_region"`
	DefaultBucket string `mapstructure:"default_bucket"`
}

// Load reads configuration from the given file path (if non-empty) plus
// the standard search locations (".", "$HOME/.hlsplay", "/etc/hlsplay"),
// overridable by HLSPLAY_-prefixed environment variables.
func Load(explicitPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("hlsplay")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.hlsplay")
	v.AddConfigPath("/etc/hlsplay")

	if explicitPath != "" {
		v.SetConfigFile(explicitPath)
	}

	v.SetEnvPrefix("HLSPLAY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("strict_mode", false)
	v.SetDefault("log_level", "info")
	v.SetDefault("s3_region", "us-east-1")
	v.SetDefault("default_bucket", "")

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
