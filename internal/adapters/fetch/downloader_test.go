package fetch_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/stoke/internal/adapters/fetch"
	"go.trai.ch/stoke/internal/core/domain"
)

func TestDownloader_Fetch(t *testing.T) {
	payload := []byte("pretend this is a runtime archive")

	var gotCookie string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCookie = r.Header.Get("Cookie")
		_, _ = w.Write(payload)
	}))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "cache", "jre", "runtime.tar.gz")

	d := fetch.NewDownloader()
	require.NoError(t, d.Fetch(t.Context(), server.URL, dest))

	got, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
	assert.Contains(t, gotCookie, "oraclelicense")

	// No partial files left behind.
	leftovers, err := filepath.Glob(filepath.Join(filepath.Dir(dest), "*.part"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestDownloader_Fetch_HTTPError(t *testing.T) {
	tests := []struct {
		name   string
		status int
	}{
		{name: "not found", status: http.StatusNotFound},
		{name: "server error", status: http.StatusInternalServerError},
		{name: "forbidden", status: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			dest := filepath.Join(t.TempDir(), "runtime.tar.gz")

			d := fetch.NewDownloader()
			err := d.Fetch(t.Context(), server.URL, dest)
			require.Error(t, err)
			require.ErrorContains(t, err, domain.ErrRuntimeDownloadFailed.Error())
			assert.NoFileExists(t, dest)
		})
	}
}

func TestDownloader_Fetch_TruncatedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		// Declare more bytes than are sent so the client sees a short body.
		w.Header().Set("Content-Length", strconv.Itoa(1024))
		_, _ = w.Write([]byte("short"))
	}))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "runtime.tar.gz")

	d := fetch.NewDownloader()
	err := d.Fetch(t.Context(), server.URL, dest)
	require.Error(t, err)
	require.ErrorContains(t, err, domain.ErrRuntimeDownloadFailed.Error())

	// The destination must be complete or absent, never truncated.
	assert.NoFileExists(t, dest)
	leftovers, globErr := filepath.Glob(filepath.Join(filepath.Dir(dest), "*.part"))
	require.NoError(t, globErr)
	assert.Empty(t, leftovers)
}

func TestDownloader_Fetch_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("never read"))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	dest := filepath.Join(t.TempDir(), "runtime.tar.gz")

	d := fetch.NewDownloader()
	err := d.Fetch(ctx, server.URL, dest)
	require.Error(t, err)
	assert.NoFileExists(t, dest)
}
