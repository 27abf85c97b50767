// Package fetch implements the byte-fetching collaborators the parser
// core deliberately has no knowledge of: reading a playlist from disk,
// over HTTP, or from S3. Each fetcher hands back a plain []byte; nothing
// here knows how to interpret HLS.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
)

// Local reads a playlist from a local file path.
func Local(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fetch: reading %q: %w", path, err)
	}
	return data, nil
}

// HTTP fetches a playlist over HTTP or HTTPS.
func HTTP(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch: building request for %q: %w", rawURL, err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: GET %q: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch: GET %q: unexpected status %s", rawURL, resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("fetch: reading body of %q: %w", rawURL, err)
	}
	return data, nil
}

// Source fetches bytes from whichever scheme the given source string
// names: a bare or file:// path, an http(s):// URL, an s3://bucket/key
// reference, or a bare s3:key reference that falls back to defaultBucket.
func Source(ctx context.Context, source string, s3 *S3Fetcher, defaultBucket string) ([]byte, error) {
	u, err := url.Parse(source)
	if err != nil || u.Scheme == "" {
		return Local(strings.TrimPrefix(source, "file://"))
	}

	switch u.Scheme {
	case "file":
		return Local(u.Path)
	case "http", "https":
		return HTTP(ctx, source)
	case "s3":
		bucket := u.Host
		key := strings.TrimPrefix(u.Path, "/")
		if bucket == "" {
			if defaultBucket == "" {
				return nil, fmt.Errorf("fetch: s3 source %q has no bucket and no default_bucket is configured", source)
			}
			bucket = defaultBucket
			key = strings.TrimPrefix(u.Opaque, "/")
		}
		if s3 == nil {
			return nil, fmt.Errorf("fetch: s3 source %q given but no S3 client configured", source)
		}
		return s3.Get(ctx, bucket, key)
	default:
		return nil, fmt.Errorf("fetch: unsupported scheme %q in %q", u.Scheme, source)
	}
}
