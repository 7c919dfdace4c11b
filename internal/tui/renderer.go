package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/tangle/internal/core/ports"
)

var _ ports.Renderer = (*Renderer)(nil)

// Renderer runs the Bubble Tea model as a ports.Renderer.
type Renderer struct {
	tape  TapeSource
	opts  []tea.ProgramOption
	errCh chan error
}

// NewRenderer creates a new TUI renderer reading from tape.
func NewRenderer(tape TapeSource, opts ...tea.ProgramOption) *Renderer {
	return &Renderer{
		tape:  tape,
		opts:  opts,
		errCh: make(chan error, 1),
	}
}

// Start launches the TUI in a background goroutine. Cancelling ctx kills it.
func (r *Renderer) Start(ctx context.Context) error {
	opts := append([]tea.ProgramOption{tea.WithContext(ctx)}, r.opts...)
	program := tea.NewProgram(NewModel(r.tape), opts...)
	go func() {
		_, err := program.Run()
		r.errCh <- err
	}()
	return nil
}

// Wait blocks until the TUI has terminated. The TUI terminates once the tape ends.
func (r *Renderer) Wait() error {
	return <-r.errCh
}
