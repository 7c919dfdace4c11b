package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/tangle/internal/adapters/cas"                //nolint:depguard // Wired in app layer
	"go.trai.ch/tangle/internal/adapters/config"             //nolint:depguard // Wired in app layer
	"go.trai.ch/tangle/internal/adapters/fs"                 //nolint:depguard // Wired in app layer
	"go.trai.ch/tangle/internal/adapters/git"                //nolint:depguard // Wired in app layer
	"go.trai.ch/tangle/internal/adapters/logger"             //nolint:depguard // Wired in app layer
	"go.trai.ch/tangle/internal/adapters/settings"           //nolint:depguard // Wired in app layer
	"go.trai.ch/tangle/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"go.trai.ch/tangle/internal/core/ports"
	"go.trai.ch/tangle/internal/engine/scheduler"
	"go.trai.ch/tangle/internal/engine/sections"
	"go.trai.ch/tangle/internal/tui"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			settings.NodeID,
			sections.NodeID,
			git.NodeID,
			config.CatalogueNodeID,
			fs.HasherNodeID,
			fs.VerifierNodeID,
			cas.NodeID,
			scheduler.NodeID,
			progrock.NodeID,
			tui.RendererNodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewComponents(app, log), nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	s, err := graft.Dep[*settings.Settings](ctx)
	if err != nil {
		return nil, err
	}

	provider, err := graft.Dep[*sections.Provider](ctx)
	if err != nil {
		return nil, err
	}

	vcs, err := graft.Dep[ports.VCS](ctx)
	if err != nil {
		return nil, err
	}

	catalogue, err := graft.Dep[ports.Catalogue](ctx)
	if err != nil {
		return nil, err
	}

	hasher, err := graft.Dep[ports.Hasher](ctx)
	if err != nil {
		return nil, err
	}

	verifier, err := graft.Dep[ports.Verifier](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.BuildCacheStore](ctx)
	if err != nil {
		return nil, err
	}

	sched, err := graft.Dep[*scheduler.Scheduler](ctx)
	if err != nil {
		return nil, err
	}

	telemetry, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	renderer, err := graft.Dep[ports.Renderer](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(s, provider, vcs, catalogue, hasher, verifier, store, sched, telemetry, renderer, log), nil
}
