package wiring_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/grindlemire/graft"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tangle/internal/adapters/settings"
	"go.trai.ch/tangle/internal/app"
	_ "go.trai.ch/tangle/internal/wiring"
)

// TestGraftDependencies resolves the full node graph from inside a workspace module.
func TestGraftDependencies(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, settings.MetaDir), 0o750))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "app"), 0o750))
	t.Chdir(filepath.Join(root, "app"))

	components, _, err := graft.ExecuteFor[*app.Components](context.Background())
	require.NoError(t, err)
	require.NotNil(t, components)
	assert.NotNil(t, components.App)
	assert.NotNil(t, components.Logger)
}
