package shell

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/tangle/internal/adapters/logger"
	"go.trai.ch/tangle/internal/adapters/settings"
	"go.trai.ch/tangle/internal/core/ports"
	"go.trai.ch/tangle/internal/engine/sections"
)

// NodeID is the unique identifier for the build executor Graft node.
const NodeID graft.ID = "adapter.executor"

func init() {
	graft.Register(graft.Node[ports.Builder]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID, settings.NodeID, sections.NodeID},
		Run: func(ctx context.Context) (ports.Builder, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			s, err := graft.Dep[*settings.Settings](ctx)
			if err != nil {
				return nil, err
			}
			provider, err := graft.Dep[*sections.Provider](ctx)
			if err != nil {
				return nil, err
			}
			return NewExecutor(provider, s.Root, log), nil
		},
	})
}
