package cas_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tangle/internal/adapters/cas"
	"go.trai.ch/tangle/internal/core/domain"
)

func TestStore_SaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".tangle", "build-cache.json")
	store := cas.NewStore(path)

	cache := domain.BuildCache{
		"core/full-build": {"core": "c0ffee", "logging": "beef"},
		"logging/client":  {"logging": "beef"},
	}
	require.NoError(t, store.Save(cache))

	// A fresh store sees the persisted content.
	got, err := cas.NewStore(path).Load()
	require.NoError(t, err)
	assert.Equal(t, cache, got)
}

func TestStore_LoadMissingFile(t *testing.T) {
	store := cas.NewStore(filepath.Join(t.TempDir(), "build-cache.json"))

	got, err := store.Load()
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestStore_LoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "build-cache.json")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	got, err := cas.NewStore(path).Load()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStore_LoadCorrupted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "build-cache.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := cas.NewStore(path).Load()
	assert.ErrorContains(t, err, "failed to unmarshal build cache")
}

func TestStore_SaveReplaces(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "build-cache.json")
	store := cas.NewStore(path)

	require.NoError(t, store.Save(domain.BuildCache{"a/x": {"a": "1"}}))
	require.NoError(t, store.Save(domain.BuildCache{"b/y": {"b": "2"}}))

	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, domain.BuildCache{"b/y": {"b": "2"}}, got)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}
