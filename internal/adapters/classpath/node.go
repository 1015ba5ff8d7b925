package classpath

import (
	"context"

	"github.com/grindlemire/graft"

	"go.trai.ch/stoke/internal/adapters/config"
	"go.trai.ch/stoke/internal/adapters/deps"
	"go.trai.ch/stoke/internal/core/ports"
)

// NodeID is the identifier for the classpath builder node.
const NodeID graft.ID = "adapter.classpath"

func init() {
	graft.Register(graft.Node[ports.ClasspathBuilder]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID, deps.NodeID},
		Run: func(ctx context.Context) (ports.ClasspathBuilder, error) {
			store, err := graft.Dep[ports.ConfigStore](ctx)
			if err != nil {
				return nil, err
			}

			cache, err := graft.Dep[ports.DependencyCache](ctx)
			if err != nil {
				return nil, err
			}

			return NewBuilder(store, cache), nil
		},
	})
}
