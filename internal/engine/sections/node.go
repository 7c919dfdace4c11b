package sections

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/tangle/internal/adapters/config" //nolint:depguard // Wired in engine node
	"go.trai.ch/tangle/internal/core/ports"
)

// NodeID is the unique identifier for the section Provider Graft node.
const NodeID graft.ID = "engine.sections"

func init() {
	graft.Register(graft.Node[*Provider]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID},
		Run: func(ctx context.Context) (*Provider, error) {
			loader, err := graft.Dep[ports.ModuleLoader](ctx)
			if err != nil {
				return nil, err
			}
			return NewProvider(loader), nil
		},
	})
}
