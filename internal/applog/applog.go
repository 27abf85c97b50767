// Package applog builds the structured loggers the CLI uses. The parser
// core and the fetch collaborators never import this package: only the
// CLI logs anything.
package applog

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// New builds a zerolog.Logger writing to w with the given level name
// ("debug", "info", "warn" or "warning", "error", and "disabled", "silent"
// or "off" to turn logging off — anything else falls back to info).
func New(w io.Writer, level string) zerolog.Logger {
	return zerolog.New(w).Level(parseLevel(level)).With().Timestamp().Logger()
}

// Default builds a logger writing to stderr at info level, for call sites
// that don't have a configured level yet.
func Default() zerolog.Logger {
	return New(os.Stderr, "info")
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "silent", "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}
