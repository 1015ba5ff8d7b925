package fetch

import (
	"archive/tar"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/stoke/internal/core/domain"
	"go.trai.ch/stoke/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Extractor = (*Extractor)(nil)

// Extractor implements ports.Extractor for gzipped tar archives.
type Extractor struct{}

// NewExtractor creates a new archive extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract unpacks archive into destDir and returns the absolute path of the
// single top-level directory it contains. Runtime archives ship everything
// under one versioned root directory; any other layout is rejected.
func (e *Extractor) Extract(archive, destDir string) (string, error) {
	// #nosec G304 -- archive is the temp file the downloader just wrote
	f, err := os.Open(archive)
	if err != nil {
		return "", zerr.Wrap(err, domain.ErrRuntimeExtractFailed.Error())
	}
	defer func() {
		_ = f.Close()
	}()

	zr, err := gzip.NewReader(f)
	if err != nil {
		return "", zerr.Wrap(err, domain.ErrRuntimeExtractFailed.Error())
	}
	defer func() {
		_ = zr.Close()
	}()

	absDest, err := filepath.Abs(destDir)
	if err != nil {
		return "", zerr.Wrap(err, domain.ErrRuntimeExtractFailed.Error())
	}
	if err := os.MkdirAll(absDest, domain.DirPerm); err != nil {
		return "", zerr.Wrap(err, domain.ErrRuntimeExtractFailed.Error())
	}

	// Top-level entry name -> whether it is (or contains) a directory.
	roots := make(map[string]bool)

	tr := tar.NewReader(zr)
	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", zerr.Wrap(err, domain.ErrRuntimeExtractFailed.Error())
		}

		cleaned := filepath.Clean(filepath.FromSlash(header.Name))
		if cleaned == "." {
			continue
		}
		target, ok := joinUnder(absDest, cleaned)
		if !ok {
			return "", zerr.With(domain.ErrRuntimeExtractFailed, "entry", header.Name)
		}

		top, rest, _ := strings.Cut(cleaned, string(os.PathSeparator))
		if rest != "" || header.Typeflag == tar.TypeDir {
			roots[top] = true
		} else if _, seen := roots[top]; !seen {
			roots[top] = false
		}

		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, domain.DirPerm); err != nil {
				return "", zerr.Wrap(err, domain.ErrRuntimeExtractFailed.Error())
			}
		case tar.TypeReg:
			if err := writeEntry(target, header, tr); err != nil {
				return "", err
			}
		case tar.TypeSymlink:
			// Link targets stay as recorded; runtime archives use relative
			// links between sibling libraries.
			if err := os.MkdirAll(filepath.Dir(target), domain.DirPerm); err != nil {
				return "", zerr.Wrap(err, domain.ErrRuntimeExtractFailed.Error())
			}
			_ = os.Remove(target)
			if err := os.Symlink(header.Linkname, target); err != nil {
				return "", zerr.Wrap(err, domain.ErrRuntimeExtractFailed.Error())
			}
		case tar.TypeLink:
			linkTarget, ok := joinUnder(absDest, filepath.Clean(filepath.FromSlash(header.Linkname)))
			if !ok {
				return "", zerr.With(domain.ErrRuntimeExtractFailed, "entry", header.Name)
			}
			if err := os.MkdirAll(filepath.Dir(target), domain.DirPerm); err != nil {
				return "", zerr.Wrap(err, domain.ErrRuntimeExtractFailed.Error())
			}
			_ = os.Remove(target)
			if err := os.Link(linkTarget, target); err != nil {
				return "", zerr.Wrap(err, domain.ErrRuntimeExtractFailed.Error())
			}
		default:
			// Global headers and other special entries carry no payload.
			continue
		}
	}

	if len(roots) != 1 {
		return "", zerr.With(domain.ErrRuntimeLayoutInvalid, "top_level_entries", len(roots))
	}
	for name, isDir := range roots {
		if !isDir {
			return "", zerr.With(domain.ErrRuntimeLayoutInvalid, "top_level_entry", name)
		}
		return filepath.Join(absDest, name), nil
	}
	return "", domain.ErrRuntimeLayoutInvalid
}

// writeEntry copies one regular file out of the archive. File modes carry
// over so the runtime binaries keep their exec bits.
func writeEntry(target string, header *tar.Header, tr *tar.Reader) error {
	if err := os.MkdirAll(filepath.Dir(target), domain.DirPerm); err != nil {
		return zerr.Wrap(err, domain.ErrRuntimeExtractFailed.Error())
	}

	mode := header.FileInfo().Mode().Perm()
	// #nosec G304 -- target is confined to the extraction root by joinUnder
	out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return zerr.Wrap(err, domain.ErrRuntimeExtractFailed.Error())
	}

	//nolint:gosec // the archive comes from the pinned runtime URL, not arbitrary input
	if _, err := io.Copy(out, tr); err != nil {
		_ = out.Close()
		return zerr.Wrap(err, domain.ErrRuntimeExtractFailed.Error())
	}

	if err := out.Close(); err != nil {
		return zerr.Wrap(err, domain.ErrRuntimeExtractFailed.Error())
	}

	return nil
}

// joinUnder joins a cleaned entry name onto root, refusing names that would
// escape it.
func joinUnder(root, cleaned string) (string, bool) {
	if filepath.IsAbs(cleaned) || cleaned == ".." ||
		strings.HasPrefix(cleaned, ".."+string(os.PathSeparator)) {
		return "", false
	}
	return filepath.Join(root, cleaned), true
}
