package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/nullwave/hlsplay/internal/applog"
	"github.com/nullwave/hlsplay/internal/fetch"
	"github.com/nullwave/hlsplay/m3u8"
)

func newParseCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "parse <source>",
		Short: "Fetch and decode a playlist, printing the parsed record as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args[0], flags)
		},
	}
}

func runParse(cmd *cobra.Command, source string, flags *rootFlags) error {
	cfg, err := resolveConfig(flags)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := applog.New(cmd.ErrOrStderr(), cfg.LogLevel)
	requestID := uuid.NewString()
	start := time.Now()

	ctx := cmd.Context()

	var s3Fetcher *fetch.S3Fetcher
	if strings.HasPrefix(source, "s3:") {
		s3Fetcher, err = fetch.NewS3Fetcher(ctx, cfg.S3Region)
		if err != nil {
			return fmt.Errorf("configuring s3 client: %w", err)
		}
	}

	data, err := fetch.Source(ctx, source, s3Fetcher, cfg.DefaultBucket)
	if err != nil {
		log.Error().Str("request_id", requestID).Str("source", source).Err(err).Msg("fetch failed")
		return err
	}

	pl, err := m3u8.Decode(data, cfg.StrictMode)
	if err != nil {
		log.Error().Str("request_id", requestID).Str("source", source).Err(err).Msg("decode failed")
		return err
	}

	log.Info().
		Str("request_id", requestID).
		Str("source", source).
		Bool("strict", cfg.StrictMode).
		Bool("is_variant", pl.IsVariant).
		Int("segment_count", len(pl.Segments)).
		Int("playlist_count", len(pl.Playlists)).
		Dur("duration_ms", time.Since(start)).
		Msg("decoded playlist")

	out, err := json.MarshalIndent(pl, "", "  ")
	if err != nil {
		return fmt.Errorf("rendering result: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
