// Package settings locates the workspace and loads its settings.
package settings

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"
	"go.trai.ch/tangle/internal/core/domain"
	"go.trai.ch/zerr"
)

const (
	// MetaDir marks a workspace root and holds its settings, catalogue and cache.
	MetaDir = ".tangle"

	envPrefix    = "TANGLE"
	settingsFile = "settings.yaml"
)

// Keys understood in settings.yaml and their environment overrides.
const (
	KeyMaxParallelism = "maxParallelism"
	KeyLocalChanges   = "localChanges"
	KeyDefaultBranch  = "defaultBranch"
	KeyGitBinary      = "gitBinary"
	KeyCatalogueFile  = "catalogueFile"
	KeyCacheFile      = "cacheFile"
	KeyLogLevel       = "logLevel"
)

// Settings is the resolved workspace configuration.
type Settings struct {
	// Root is the workspace root, empty when the working directory is outside a workspace.
	Root string
	// RootModule is the module containing the working directory.
	RootModule string

	MaxParallelism int
	LocalChanges   domain.LocalChangesPolicy
	DefaultBranch  string
	GitBinary      string
	CatalogueFile  string
	CacheFile      string
	LogLevel       string
}

// RequireModule fails unless the working directory is inside a module of a workspace.
func (s *Settings) RequireModule() error {
	if s.Root == "" {
		return domain.ErrWorkspaceNotFound
	}
	if s.RootModule == "" {
		return zerr.With(zerr.New("working directory is not inside a module"), "workspace", s.Root)
	}
	return nil
}

// Load discovers the workspace containing cwd and reads its settings.
// Environment variables take precedence over settings.yaml.
func Load(cwd string) (*Settings, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv(KeyMaxParallelism, "TANGLE_MAX_PARALLELISM")
	_ = v.BindEnv(KeyLocalChanges, "TANGLE_LOCAL_CHANGES")
	_ = v.BindEnv(KeyDefaultBranch, "TANGLE_DEFAULT_BRANCH")
	_ = v.BindEnv(KeyGitBinary, "TANGLE_GIT_BINARY")
	_ = v.BindEnv(KeyCatalogueFile, "TANGLE_CATALOGUE_FILE")
	_ = v.BindEnv(KeyCacheFile, "TANGLE_CACHE_FILE")
	_ = v.BindEnv(KeyLogLevel, "TANGLE_LOG_LEVEL")

	v.SetDefault(KeyMaxParallelism, runtime.NumCPU())
	v.SetDefault(KeyLocalChanges, string(domain.LocalChangesFail))
	v.SetDefault(KeyDefaultBranch, "master")
	v.SetDefault(KeyGitBinary, "git")
	v.SetDefault(KeyCatalogueFile, "modules.yaml")
	v.SetDefault(KeyCacheFile, "build-cache.json")
	v.SetDefault(KeyLogLevel, "info")

	root, err := FindRoot(cwd)
	if err != nil && !errors.Is(err, domain.ErrWorkspaceNotFound) {
		return nil, err
	}

	s := &Settings{Root: root}
	if root != "" {
		s.RootModule = rootModule(root, cwd)

		v.SetConfigFile(filepath.Join(root, MetaDir, settingsFile))
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, zerr.Wrap(err, "failed to read workspace settings")
			}
		}
	}

	s.MaxParallelism = v.GetInt(KeyMaxParallelism)
	if s.MaxParallelism < 1 {
		s.MaxParallelism = 1
	}
	s.LocalChanges = domain.ParseLocalChangesPolicy(v.GetString(KeyLocalChanges))
	s.DefaultBranch = v.GetString(KeyDefaultBranch)
	s.GitBinary = v.GetString(KeyGitBinary)
	s.CatalogueFile = s.metaPath(v.GetString(KeyCatalogueFile))
	s.CacheFile = s.metaPath(v.GetString(KeyCacheFile))
	s.LogLevel = v.GetString(KeyLogLevel)
	return s, nil
}

// FindRoot walks up from dir until a directory containing MetaDir is found.
func FindRoot(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", zerr.Wrap(err, "failed to resolve working directory")
	}
	for {
		info, err := os.Stat(filepath.Join(dir, MetaDir))
		if err == nil && info.IsDir() {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", domain.ErrWorkspaceNotFound
		}
		dir = parent
	}
}

// rootModule returns the first path element of cwd below root.
func rootModule(root, cwd string) string {
	abs, err := filepath.Abs(cwd)
	if err != nil {
		return ""
	}
	rel, err := filepath.Rel(root, abs)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return ""
	}
	first, _, _ := strings.Cut(filepath.ToSlash(rel), "/")
	if first == MetaDir {
		return ""
	}
	return first
}

func (s *Settings) metaPath(p string) string {
	if p == "" || filepath.IsAbs(p) || s.Root == "" {
		return p
	}
	return filepath.Join(s.Root, MetaDir, p)
}
