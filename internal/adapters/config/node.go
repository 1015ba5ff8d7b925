package config

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/stoke/internal/adapters/logger"
	"go.trai.ch/stoke/internal/adapters/watcher"
	"go.trai.ch/stoke/internal/core/ports"
)

// NodeID is the unique identifier for the config store Graft node.
const NodeID graft.ID = "adapter.config"

func init() {
	graft.Register(graft.Node[ports.ConfigStore]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID, watcher.WatcherNodeID},
		Run: func(ctx context.Context) (ports.ConfigStore, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			fs, err := graft.Dep[ports.Watcher](ctx)
			if err != nil {
				return nil, err
			}
			root, err := os.Getwd()
			if err != nil {
				return nil, err
			}
			return NewStore(root, log, fs), nil
		},
	})
}
