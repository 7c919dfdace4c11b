package cas

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/tangle/internal/adapters/settings"
	"go.trai.ch/tangle/internal/core/ports"
)

// NodeID is the unique identifier for the build cache store Graft node.
const NodeID graft.ID = "adapter.build_cache_store"

func init() {
	graft.Register(graft.Node[ports.BuildCacheStore]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{settings.NodeID},
		Run: func(ctx context.Context) (ports.BuildCacheStore, error) {
			s, err := graft.Dep[*settings.Settings](ctx)
			if err != nil {
				return nil, err
			}
			return NewStore(s.CacheFile), nil
		},
	})
}
