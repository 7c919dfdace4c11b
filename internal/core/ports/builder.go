package ports

import (
	"context"

	"go.trai.ch/tangle/internal/core/domain"
)

// Builder builds one configuration of one module.
//
//go:generate go run go.uber.org/mock/mockgen -source=builder.go -destination=mocks/mock_builder.go -package=mocks
type Builder interface {
	// Build runs the build of ref. It returns an error if the build failed.
	Build(ctx context.Context, ref domain.Dep) error
}

// BuildSettingsSource supplies the merged build settings of a (module, configuration).
type BuildSettingsSource interface {
	BuildSettings(module, configuration string) (domain.BuildSettings, error)
}
