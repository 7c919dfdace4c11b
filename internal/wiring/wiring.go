// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/tangle/internal/adapters/cas"
	_ "go.trai.ch/tangle/internal/adapters/config"
	_ "go.trai.ch/tangle/internal/adapters/fs"
	_ "go.trai.ch/tangle/internal/adapters/git"
	_ "go.trai.ch/tangle/internal/adapters/logger"
	_ "go.trai.ch/tangle/internal/adapters/settings"
	_ "go.trai.ch/tangle/internal/adapters/shell"
	_ "go.trai.ch/tangle/internal/adapters/telemetry/progrock"
	// Register app, engine and display nodes.
	_ "go.trai.ch/tangle/internal/app"
	_ "go.trai.ch/tangle/internal/engine/scheduler"
	_ "go.trai.ch/tangle/internal/engine/sections"
	_ "go.trai.ch/tangle/internal/tui"
)
