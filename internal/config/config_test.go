package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matryer/is"
)

func TestLoadDefaultsWhenNoFilePresent(t *testing.T) {
	is := is.New(t)

	dir := t.TempDir()
	is.NoErr(os.Chdir(dir))

	cfg, err := Load("")
	is.NoErr(err)
	is.Equal(cfg.StrictMode, false)
	is.Equal(cfg.LogLevel, "info")
	is.Equal(cfg.S3Region, "us-east-1")
}

func TestLoadReadsExplicitFile(t *testing.T) {
	is := is.New(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	is.NoErr(os.WriteFile(path, []byte("strict_mode: true\nlog_level: debug\n"), 0o644))

	cfg, err := Load(path)
	is.NoErr(err)
	is.Equal(cfg.StrictMode, true)
	is.Equal(cfg.LogLevel, "debug")
}

func TestLoadEnvOverridesDefault(t *testing.T) {
	is := is.New(t)

	dir := t.TempDir()
	is.NoErr(os.Chdir(dir))
	t.Setenv("HLSPLAY_LOG_LEVEL", "warn")

	cfg, err := Load("")
	is.NoErr(err)
	is.Equal(cfg.LogLevel, "warn")
}
