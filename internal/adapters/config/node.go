package config

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/tangle/internal/adapters/settings"
	"go.trai.ch/tangle/internal/core/ports"
)

const (
	// NodeID is the unique identifier for the module.yaml loader Graft node.
	NodeID graft.ID = "adapter.module_loader"
	// CatalogueNodeID is the unique identifier for the module catalogue Graft node.
	CatalogueNodeID graft.ID = "adapter.catalogue"
)

func init() {
	graft.Register(graft.Node[ports.ModuleLoader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{settings.NodeID},
		Run: func(ctx context.Context) (ports.ModuleLoader, error) {
			s, err := graft.Dep[*settings.Settings](ctx)
			if err != nil {
				return nil, err
			}
			return NewLoader(s.Root), nil
		},
	})

	graft.Register(graft.Node[ports.Catalogue]{
		ID:        CatalogueNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{settings.NodeID},
		Run: func(ctx context.Context) (ports.Catalogue, error) {
			s, err := graft.Dep[*settings.Settings](ctx)
			if err != nil {
				return nil, err
			}
			if s.Root == "" {
				return NewCatalogue(nil)
			}
			return LoadCatalogue(s.CatalogueFile)
		},
	})
}
