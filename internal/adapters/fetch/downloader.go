// Package fetch downloads and unpacks runtime archives.
package fetch

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"go.trai.ch/stoke/internal/core/domain"
	"go.trai.ch/stoke/internal/core/ports"
	"go.trai.ch/zerr"
)

// licenseCookie is sent with every archive request. The runtime download
// endpoint serves the archive only when the license-acceptance cookie is
// present.
const licenseCookie = "oraclelicense=accept-securebackup-cookie"

var _ ports.Downloader = (*Downloader)(nil)

// Downloader implements ports.Downloader over plain HTTP. The client has no
// overall timeout: archive downloads can take minutes on slow links, and
// cancellation comes from the request context.
type Downloader struct {
	client *http.Client
}

// NewDownloader creates a new archive downloader.
func NewDownloader() *Downloader {
	return &Downloader{client: &http.Client{}}
}

// Fetch downloads url into dest. The body streams into a temporary file next
// to dest and is renamed into place, so dest is either complete or absent.
func (d *Downloader) Fetch(ctx context.Context, url, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return zerr.Wrap(err, domain.ErrRuntimeDownloadFailed.Error())
	}
	req.Header.Set("Cookie", licenseCookie)

	resp, err := d.client.Do(req)
	if err != nil {
		return zerr.Wrap(err, domain.ErrRuntimeDownloadFailed.Error())
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		failedErr := zerr.With(domain.ErrRuntimeDownloadFailed, "status_code", resp.StatusCode)
		return zerr.With(failedErr, "url", url)
	}

	return writeAtomically(dest, resp.Body)
}

// writeAtomically streams body to a temp file in dest's directory and renames
// it over dest only after a complete copy.
func writeAtomically(dest string, body io.Reader) error {
	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.Wrap(err, domain.ErrRuntimeDownloadFailed.Error())
	}

	tmpFile, err := os.CreateTemp(dir, "archive-*.part")
	if err != nil {
		return zerr.Wrap(err, domain.ErrRuntimeDownloadFailed.Error())
	}
	tmpName := tmpFile.Name()

	// Clean up the partial file on any error path.
	defer func() {
		if _, statErr := os.Stat(tmpName); statErr == nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := io.Copy(tmpFile, body); err != nil {
		_ = tmpFile.Close()
		return zerr.Wrap(err, domain.ErrRuntimeDownloadFailed.Error())
	}

	if err := tmpFile.Close(); err != nil {
		return zerr.Wrap(err, domain.ErrRuntimeDownloadFailed.Error())
	}

	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return zerr.Wrap(err, domain.ErrRuntimeDownloadFailed.Error())
	}

	if err := os.Rename(tmpName, dest); err != nil {
		return zerr.Wrap(err, domain.ErrRuntimeDownloadFailed.Error())
	}

	return nil
}
