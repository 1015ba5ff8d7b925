package fetch

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/stoke/internal/core/ports"
)

const (
	// DownloaderNodeID is the unique identifier for the archive downloader Graft node.
	DownloaderNodeID graft.ID = "adapter.fetch.downloader"
	// ExtractorNodeID is the unique identifier for the archive extractor Graft node.
	ExtractorNodeID graft.ID = "adapter.fetch.extractor"
)

func init() {
	// Downloader Node
	graft.Register(graft.Node[ports.Downloader]{
		ID:        DownloaderNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Downloader, error) {
			return NewDownloader(), nil
		},
	})

	// Extractor Node
	graft.Register(graft.Node[ports.Extractor]{
		ID:        ExtractorNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Extractor, error) {
			return NewExtractor(), nil
		},
	})
}
