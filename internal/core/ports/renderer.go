package ports

import "context"

// Renderer displays build progress while the scheduler runs.
type Renderer interface {
	// Start begins rendering in the background.
	Start(ctx context.Context) error
	// Wait blocks until rendering has finished.
	Wait() error
}
