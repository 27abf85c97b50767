package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matryer/is"
)

func TestLocalReadsFile(t *testing.T) {
	is := is.New(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "playlist.m3u8")
	is.NoErr(os.WriteFile(path, []byte("#EXTM3U\n"), 0o644))

	data, err := Local(path)
	is.NoErr(err)
	is.Equal(string(data), "#EXTM3U\n")
}

func TestLocalMissingFile(t *testing.T) {
	is := is.New(t)

	_, err := Local(filepath.Join(t.TempDir(), "missing.m3u8"))
	is.True(err != nil)
}

func TestHTTPFetchesBody(t *testing.T) {
	is := is.New(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("#EXTM3U\n#EXT-X-ENDLIST\n"))
	}))
	defer srv.Close()

	data, err := HTTP(context.Background(), srv.URL)
	is.NoErr(err)
	is.Equal(string(data), "#EXTM3U\n#EXT-X-ENDLIST\n")
}

func TestHTTPNonOKStatus(t *testing.T) {
	is := is.New(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := HTTP(context.Background(), srv.URL)
	is.True(err != nil)
}

func TestSourceDispatchesByScheme(t *testing.T) {
	is := is.New(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "p.m3u8")
	is.NoErr(os.WriteFile(path, []byte("#EXTM3U\n"), 0o644))

	data, err := Source(context.Background(), path, nil, "")
	is.NoErr(err)
	is.Equal(string(data), "#EXTM3U\n")

	_, err = Source(context.Background(), "s3://bucket/key.m3u8", nil, "")
	is.True(err != nil) // no S3 client configured
}

func TestSourceBareS3KeyUsesDefaultBucket(t *testing.T) {
	is := is.New(t)

	_, err := Source(context.Background(), "s3:key.m3u8", nil, "fallback-bucket")
	is.True(strings.Contains(err.Error(), "no S3 client configured")) // bucket resolved, client missing instead

	_, err = Source(context.Background(), "s3:key.m3u8", nil, "")
	is.True(strings.Contains(err.Error(), "no default_bucket is configured")) // no fallback bucket available
}
