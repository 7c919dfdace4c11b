package scheduler

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/tangle/internal/adapters/cas"                //nolint:depguard // Wired in engine wiring
	"go.trai.ch/tangle/internal/adapters/shell"              //nolint:depguard // Wired in engine wiring
	"go.trai.ch/tangle/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/tangle/internal/core/ports"
)

// NodeID is the unique identifier for the scheduler Graft node.
const NodeID graft.ID = "engine.scheduler"

func init() {
	graft.Register(graft.Node[*Scheduler]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			shell.NodeID,
			cas.NodeID,
			progrock.NodeID,
		},
		Run: func(ctx context.Context) (*Scheduler, error) {
			builder, err := graft.Dep[ports.Builder](ctx)
			if err != nil {
				return nil, err
			}

			store, err := graft.Dep[ports.BuildCacheStore](ctx)
			if err != nil {
				return nil, err
			}

			telemetry, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}

			return NewScheduler(builder, store, telemetry), nil
		},
	})
}
