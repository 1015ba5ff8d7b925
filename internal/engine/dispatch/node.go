package dispatch

import (
	"context"

	"github.com/grindlemire/graft"

	"go.trai.ch/stoke/internal/adapters/classpath"
	"go.trai.ch/stoke/internal/adapters/config"
	"go.trai.ch/stoke/internal/adapters/jre"
	"go.trai.ch/stoke/internal/adapters/launcher"
	"go.trai.ch/stoke/internal/adapters/telemetry"
	"go.trai.ch/stoke/internal/core/ports"
)

// NodeID is the identifier for the task dispatcher node.
const NodeID graft.ID = "engine.dispatch"

func init() {
	graft.Register(graft.Node[*Dispatcher]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID, jre.NodeID, classpath.NodeID, launcher.NodeID, telemetry.TracerNodeID},
		Run: func(ctx context.Context) (*Dispatcher, error) {
			store, err := graft.Dep[ports.ConfigStore](ctx)
			if err != nil {
				return nil, err
			}

			provisioner, err := graft.Dep[ports.RuntimeProvisioner](ctx)
			if err != nil {
				return nil, err
			}

			builder, err := graft.Dep[ports.ClasspathBuilder](ctx)
			if err != nil {
				return nil, err
			}

			launch, err := graft.Dep[ports.Launcher](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			return NewDispatcher(store, provisioner, builder, launch, tracer), nil
		},
	})
}
