package tui

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/grindlemire/graft"
	"go.trai.ch/tangle/internal/core/ports"
)

const (
	// FeedNodeID is the unique identifier for the progress feed Graft node.
	FeedNodeID graft.ID = "tui.feed"
	// RendererNodeID is the unique identifier for the progress renderer Graft node.
	RendererNodeID graft.ID = "tui.renderer"
)

func init() {
	graft.Register(graft.Node[*Feed]{
		ID:        FeedNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Feed, error) {
			return NewFeed(), nil
		},
	})

	graft.Register(graft.Node[ports.Renderer]{
		ID:        RendererNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{FeedNodeID},
		Run: func(ctx context.Context) (ports.Renderer, error) {
			feed, err := graft.Dep[*Feed](ctx)
			if err != nil {
				return nil, err
			}

			if !Interactive() {
				return NewPrinter(feed, os.Stderr), nil
			}
			return NewRenderer(feed,
				tea.WithOutput(os.Stderr),
				tea.WithInput(nil),
			), nil
		},
	})
}
