package applog

import (
	"bytes"
	"testing"

	"github.com/matryer/is"
)

func TestNewRespectsLevel(t *testing.T) {
	is := is.New(t)

	var buf bytes.Buffer
	logger := New(&buf, "error")
	logger.Info().Msg("should be suppressed")
	is.Equal(buf.Len(), 0) // info is below the configured error level

	logger.Error().Msg("should appear")
	is.True(buf.Len() > 0)
}

func TestParseLevelDefaultsToInfo(t *testing.T) {
	is := is.New(t)

	var buf bytes.Buffer
	logger := New(&buf, "not-a-real-level")
	logger.Info().Msg("visible at the default level")
	is.True(buf.Len() > 0)
}
