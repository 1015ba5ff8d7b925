package app

import (
	"context"

	"github.com/grindlemire/graft"

	"go.trai.ch/stoke/internal/adapters/config"
	"go.trai.ch/stoke/internal/adapters/deps"
	"go.trai.ch/stoke/internal/adapters/jre"
	"go.trai.ch/stoke/internal/adapters/logger"
	"go.trai.ch/stoke/internal/core/ports"
	"go.trai.ch/stoke/internal/engine/dispatch"
	"go.trai.ch/stoke/internal/engine/supervisor"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			logger.NodeID,
			config.NodeID,
			jre.NodeID,
			deps.NodeID,
			dispatch.NodeID,
			supervisor.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.ConfigStore](ctx)
	if err != nil {
		return nil, err
	}

	provisioner, err := graft.Dep[ports.RuntimeProvisioner](ctx)
	if err != nil {
		return nil, err
	}

	depCache, err := graft.Dep[ports.DependencyCache](ctx)
	if err != nil {
		return nil, err
	}

	dispatcher, err := graft.Dep[*dispatch.Dispatcher](ctx)
	if err != nil {
		return nil, err
	}

	super, err := graft.Dep[*supervisor.Supervisor](ctx)
	if err != nil {
		return nil, err
	}

	return New(log, store, provisioner, depCache, dispatcher, super), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	mainApp, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return NewComponents(mainApp, log), nil
}
