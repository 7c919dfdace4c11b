// Package cas persists the build cache: for every built (module, configuration)
// the commit hashes of the module and its dependencies it was built against.
package cas

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.trai.ch/tangle/internal/core/domain"
	"go.trai.ch/zerr"
)

// Store implements ports.BuildCacheStore using a flat JSON file.
type Store struct {
	path string
	mu   sync.Mutex
}

// NewStore creates a BuildCacheStore backed by the file at path.
func NewStore(path string) *Store {
	return &Store{path: filepath.Clean(path)}
}

// Load reads the cache file. A missing or empty file yields an empty cache.
func (s *Store) Load() (domain.BuildCache, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cache := make(domain.BuildCache)

	//nolint:gosec // Path is cleaned and provided by trusted caller
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cache, nil
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to read build cache"), "path", s.path)
	}

	if len(data) == 0 {
		return cache, nil
	}

	if err := json.Unmarshal(data, &cache); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to unmarshal build cache"), "path", s.path)
	}
	if cache == nil {
		cache = make(domain.BuildCache)
	}
	return cache, nil
}

// Save replaces the cache file. The file is written to a temporary sibling first
// and renamed into place.
func (s *Store) Save(cache domain.BuildCache) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal build cache")
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return zerr.Wrap(err, "failed to create directory for build cache")
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*")
	if err != nil {
		return zerr.Wrap(err, "failed to create temporary build cache")
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return zerr.Wrap(err, "failed to write build cache")
	}
	if err := tmp.Close(); err != nil {
		return zerr.Wrap(err, "failed to write build cache")
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to replace build cache"), "path", s.path)
	}
	return nil
}
