// Package ports defines the core interfaces for the application.
package ports

import "go.trai.ch/tangle/internal/core/domain"

// ModuleLoader reads the module.yaml of a workspace module.
//
//go:generate go run go.uber.org/mock/mockgen -source=module_loader.go -destination=mocks/mock_module_loader.go -package=mocks
type ModuleLoader interface {
	// Load decodes the module.yaml of the named module.
	// Returns nil, nil if the module has no module.yaml.
	Load(module string) (*domain.ModuleSpec, error)
}

// Catalogue is the static list of modules known to the workspace.
type Catalogue interface {
	// Lookup returns the record of the named module.
	Lookup(name string) (domain.ModuleRecord, error)
	// Modules returns every record in declaration order.
	Modules() []domain.ModuleRecord
}
