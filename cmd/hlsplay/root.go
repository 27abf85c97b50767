package main

import (
	"github.com/spf13/cobra"

	"github.com/nullwave/hlsplay/internal/config"
)

type rootFlags struct {
	configPath string
	strict     bool
	logLevel   string
	s3Region   string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "hlsplay",
		Short: "Decode HLS/M3U8 playlists into a structured record",
	}

	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "path to a hlsplay.yaml config file")
	cmd.PersistentFlags().BoolVar(&flags.strict, "strict", false, "fail on malformed playlist content instead of degrading")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn, error")
	cmd.PersistentFlags().StringVar(&flags.s3Region, "s3-region", "", "AWS region for s3:// sources")

	cmd.AddCommand(newParseCmd(flags))
	return cmd
}

func resolveConfig(flags *rootFlags) (*config.Config, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, err
	}
	if flags.logLevel != "" {
		cfg.LogLevel = flags.logLevel
	}
	if flags.s3Region != "" {
		cfg.S3Region = flags.s3Region
	}
	cfg.StrictMode = cfg.StrictMode || flags.strict
	return cfg, nil
}
