package deps

import (
	"context"
	"os"

	"github.com/grindlemire/graft"

	"go.trai.ch/stoke/internal/adapters/config"
	"go.trai.ch/stoke/internal/adapters/logger"
	"go.trai.ch/stoke/internal/core/ports"
)

// NodeID is the identifier for the dependency cache node.
const NodeID graft.ID = "adapter.deps"

func init() {
	graft.Register(graft.Node[ports.DependencyCache]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID, config.NodeID},
		Run: func(ctx context.Context) (ports.DependencyCache, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			store, err := graft.Dep[ports.ConfigStore](ctx)
			if err != nil {
				return nil, err
			}

			root, err := os.Getwd()
			if err != nil {
				return nil, err
			}

			return NewCache(root, store, log), nil
		},
	})
}
