package supervisor

import (
	"context"

	"github.com/grindlemire/graft"

	"go.trai.ch/stoke/internal/adapters/config"
	"go.trai.ch/stoke/internal/adapters/logger"
	"go.trai.ch/stoke/internal/core/ports"
	"go.trai.ch/stoke/internal/engine/dispatch"
)

// NodeID is the identifier for the watch supervisor node.
const NodeID graft.ID = "engine.supervisor"

func init() {
	graft.Register(graft.Node[*Supervisor]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID, config.NodeID, dispatch.NodeID},
		Run: func(ctx context.Context) (*Supervisor, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			store, err := graft.Dep[ports.ConfigStore](ctx)
			if err != nil {
				return nil, err
			}

			dispatcher, err := graft.Dep[*dispatch.Dispatcher](ctx)
			if err != nil {
				return nil, err
			}

			return NewSupervisor(log, store, dispatcher), nil
		},
	})
}
