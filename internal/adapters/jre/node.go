package jre

import (
	"context"

	"github.com/grindlemire/graft"

	"go.trai.ch/stoke/internal/adapters/fetch"
	"go.trai.ch/stoke/internal/adapters/logger"
	"go.trai.ch/stoke/internal/core/ports"
)

// NodeID is the identifier for the runtime provisioner node.
const NodeID graft.ID = "adapter.jre"

func init() {
	graft.Register(graft.Node[ports.RuntimeProvisioner]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID, fetch.DownloaderNodeID, fetch.ExtractorNodeID},
		Run: func(ctx context.Context) (ports.RuntimeProvisioner, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			downloader, err := graft.Dep[ports.Downloader](ctx)
			if err != nil {
				return nil, err
			}

			extractor, err := graft.Dep[ports.Extractor](ctx)
			if err != nil {
				return nil, err
			}

			return NewProvisioner(log, downloader, extractor)
		},
	})
}
