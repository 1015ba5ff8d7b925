package launcher

import (
	"context"

	"github.com/grindlemire/graft"

	"go.trai.ch/stoke/internal/core/ports"
)

// NodeID is the identifier for the launcher node.
const NodeID graft.ID = "adapter.launcher"

func init() {
	graft.Register(graft.Node[ports.Launcher]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Launcher, error) {
			return NewLauncher(), nil
		},
	})
}
