package ports

import "context"

// Downloader fetches remote artifacts to local files.
//
//go:generate mockgen -source=fetch.go -destination=mocks/mock_fetch.go -package=mocks
type Downloader interface {
	// Fetch downloads url into dest, creating parent directories as needed.
	// The destination is written completely or not at all.
	Fetch(ctx context.Context, url, dest string) error
}

// Extractor unpacks runtime archives.
type Extractor interface {
	// Extract unpacks a gzipped tar archive into destDir and returns the
	// absolute path of the single top-level directory the archive contains.
	// Archives without exactly one top-level directory are rejected.
	Extract(archive, destDir string) (string, error)
}
