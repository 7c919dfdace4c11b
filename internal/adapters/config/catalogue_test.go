package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tangle/internal/adapters/config"
	"go.trai.ch/tangle/internal/core/domain"
)

func TestLoadCatalogue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "modules.yaml")
	content := `
modules:
  - name: core
    url: git@example.com:org/core.git
    pushurl: ssh://push.example.com/org/core.git
  - name: logging
    url: git@example.com:org/logging.git
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	c, err := config.LoadCatalogue(path)
	require.NoError(t, err)

	core, err := c.Lookup("core")
	require.NoError(t, err)
	assert.Equal(t, "ssh://push.example.com/org/core.git", core.PushURL)

	logging, err := c.Lookup("logging")
	require.NoError(t, err)
	assert.Empty(t, logging.PushURL)

	assert.Len(t, c.Modules(), 2)

	_, err = c.Lookup("ghost")
	assert.ErrorContains(t, err, domain.ErrUnknownModule.Error())
}

func TestLoadCatalogue_MissingFile(t *testing.T) {
	c, err := config.LoadCatalogue(filepath.Join(t.TempDir(), "modules.yaml"))
	require.NoError(t, err)
	assert.Empty(t, c.Modules())
}

func TestNewCatalogue_Validation(t *testing.T) {
	tests := []struct {
		name    string
		records []domain.ModuleRecord
		wantErr string
	}{
		{"MissingName", []domain.ModuleRecord{{FetchURL: "x"}}, "without a name"},
		{"MissingURL", []domain.ModuleRecord{{Name: "core"}}, "without a url"},
		{"Duplicate", []domain.ModuleRecord{{Name: "a", FetchURL: "x"}, {Name: "a", FetchURL: "y"}}, "duplicate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.NewCatalogue(tt.records)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
