package app

import (
	"go.trai.ch/tangle/internal/core/ports"
)

// Components holds the wired application and the ambient services the entry point needs.
type Components struct {
	App    *App
	Logger ports.Logger
}

// NewComponents creates a new Components struct from dependencies.
func NewComponents(app *App, logger ports.Logger) *Components {
	return &Components{
		App:    app,
		Logger: logger,
	}
}
