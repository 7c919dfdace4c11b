package ports

import "go.trai.ch/tangle/internal/core/domain"

// BuildCacheStore persists the build cache between runs.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type BuildCacheStore interface {
	// Load returns the persisted cache, or an empty cache when nothing was saved yet.
	Load() (domain.BuildCache, error)

	// Save replaces the persisted cache.
	Save(cache domain.BuildCache) error
}
