// Package app implements the application layer for tangle.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"go.trai.ch/tangle/internal/adapters/settings" //nolint:depguard // Workspace settings are read in the app layer
	"go.trai.ch/tangle/internal/core/domain"
	"go.trai.ch/tangle/internal/core/ports"
	"go.trai.ch/tangle/internal/engine/cycles"
	"go.trai.ch/tangle/internal/engine/graph"
	"go.trai.ch/tangle/internal/engine/resolver"
	"go.trai.ch/tangle/internal/engine/scheduler"
	"go.trai.ch/tangle/internal/engine/sections"
	"go.trai.ch/tangle/internal/engine/updater"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App represents the main application logic.
type App struct {
	settings  *settings.Settings
	provider  *sections.Provider
	vcs       ports.VCS
	catalogue ports.Catalogue
	hasher    ports.Hasher
	verifier  ports.Verifier
	store     ports.BuildCacheStore
	scheduler *scheduler.Scheduler
	telemetry ports.Telemetry
	renderer  ports.Renderer
	logger    ports.Logger
	stdout    io.Writer
}

// New creates a new App instance.
func New(
	s *settings.Settings,
	provider *sections.Provider,
	vcs ports.VCS,
	catalogue ports.Catalogue,
	hasher ports.Hasher,
	verifier ports.Verifier,
	store ports.BuildCacheStore,
	sched *scheduler.Scheduler,
	telemetry ports.Telemetry,
	renderer ports.Renderer,
	log ports.Logger,
) *App {
	return &App{
		settings:  s,
		provider:  provider,
		vcs:       vcs,
		catalogue: catalogue,
		hasher:    hasher,
		verifier:  verifier,
		store:     store,
		scheduler: sched,
		telemetry: telemetry,
		renderer:  renderer,
		logger:    log,
		stdout:    os.Stdout,
	}
}

// WithStdout redirects command output. It is primarily used by tests.
func (a *App) WithStdout(w io.Writer) *App {
	a.stdout = w
	return a
}

// Stdout returns the writer command output goes to.
func (a *App) Stdout() io.Writer {
	return a.stdout
}

// SetVerbose switches the logger to debug level when it supports levels.
func (a *App) SetVerbose(verbose bool) {
	if !verbose {
		return
	}
	if l, ok := a.logger.(interface{ SetLevel(domain.LogLevel) }); ok {
		l.SetLevel(domain.LogLevelDebug)
	}
}

// UpdateOptions configures UpdateDeps.
type UpdateOptions struct {
	// LocalChanges overrides the workspace policy when non-empty.
	LocalChanges string
	// Jobs bounds parallel synchronizations; zero uses the workspace setting.
	Jobs int
}

// BuildOptions configures Build and BuildDeps.
type BuildOptions struct {
	// Rebuild builds every module regardless of the build cache.
	Rebuild bool
	// Jobs bounds parallel builds; zero uses the workspace setting.
	Jobs int
}

// UpdateDeps resolves the closure of the current module and synchronizes every
// dependency checkout to its resolved revision.
func (a *App) UpdateDeps(ctx context.Context, configuration string, opts UpdateOptions) error {
	root, err := a.root(configuration)
	if err != nil {
		return err
	}

	policy := a.settings.LocalChanges
	if opts.LocalChanges != "" {
		policy = domain.ParseLocalChangesPolicy(opts.LocalChanges)
	}

	stats := domain.NewRunStats()
	syncer := updater.New(a.vcs, a.catalogue, a.logger, updater.Options{
		Policy:        policy,
		DefaultBranch: a.settings.DefaultBranch,
	}, stats)

	closure, err := a.resolve(ctx, root, syncer, a.jobs(opts.Jobs))
	if err != nil {
		return err
	}

	a.logger.Info("dependencies updated",
		"root", closure.Root.String(),
		"modules", len(closure.Modules()),
		"synced", stats.Synced(),
	)
	return nil
}

// BuildDeps builds the dependencies of the current module, leaving the module itself out.
func (a *App) BuildDeps(ctx context.Context, configuration string, opts BuildOptions) error {
	return a.build(ctx, configuration, opts, true)
}

// Build builds the current module and its dependencies.
func (a *App) Build(ctx context.Context, configuration string, opts BuildOptions) error {
	return a.build(ctx, configuration, opts, false)
}

func (a *App) build(ctx context.Context, configuration string, opts BuildOptions, excludeRoot bool) error {
	root, err := a.root(configuration)
	if err != nil {
		return err
	}

	jobs := a.jobs(opts.Jobs)
	closure, err := a.resolve(ctx, root, resolver.NoSync{}, jobs)
	if err != nil {
		return err
	}

	cache, err := a.store.Load()
	if err != nil {
		return zerr.Wrap(err, "failed to load build cache")
	}

	g, err := graph.NewBuilder(a.provider, a.vcs, a.hasher, a.verifier, a.settings.Root).
		Build(ctx, closure, cache, graph.Options{Force: opts.Rebuild, ExcludeRoot: excludeRoot})
	if err != nil {
		return err
	}

	stats := domain.NewRunStats()
	if err := a.execute(ctx, g, cache, jobs, stats); err != nil {
		return err
	}

	a.logger.Info("build finished",
		"root", closure.Root.String(),
		"built", stats.Built(),
		"unchanged", stats.Cached(),
		"build_time", stats.BuildTime().String(),
	)
	return nil
}

// execute runs the scheduler while the renderer displays its progress. Closing the
// telemetry ends the progress stream, which lets the renderer finish.
func (a *App) execute(
	ctx context.Context,
	g domain.BuildGraph,
	cache domain.BuildCache,
	jobs int,
	stats *domain.RunStats,
) error {
	var eg errgroup.Group

	eg.Go(func() error {
		if err := a.renderer.Start(ctx); err != nil {
			return zerr.Wrap(err, "failed to start progress display")
		}
		if err := a.renderer.Wait(); err != nil && ctx.Err() == nil {
			a.logger.Warn("progress display stopped", "error", err)
		}
		return nil
	})

	eg.Go(func() error {
		defer func() {
			if err := a.telemetry.Close(); err != nil {
				a.logger.Warn("failed to close telemetry", "error", err)
			}
		}()
		_, err := a.scheduler.Run(ctx, g, cache, jobs, stats)
		return err
	})

	return eg.Wait()
}

// Deps prints the resolved closure of the current module without touching checkouts.
// Each line holds one module with its treeish and requested configurations.
func (a *App) Deps(ctx context.Context, configuration string) error {
	root, err := a.root(configuration)
	if err != nil {
		return err
	}

	closure, err := a.resolve(ctx, root, resolver.NoSync{}, a.jobs(0))
	if err != nil {
		return err
	}

	for _, module := range closure.Modules() {
		entry, ok := closure.Entries[module]
		if !ok {
			continue
		}
		refs := make([]string, 0, len(entry.Configurations))
		for _, c := range entry.Configurations {
			refs = append(refs, domain.FormatDep(domain.Dep{Name: module, Treeish: entry.Treeish, Configuration: c}))
		}
		if len(refs) == 0 {
			refs = append(refs, domain.FormatDep(domain.Dep{Name: module, Treeish: entry.Treeish}))
		}
		if _, err := fmt.Fprintln(a.stdout, strings.Join(refs, " ")); err != nil {
			return zerr.Wrap(err, "failed to write output")
		}
	}
	return nil
}

func (a *App) root(configuration string) (domain.Dep, error) {
	if err := a.settings.RequireModule(); err != nil {
		return domain.Dep{}, err
	}
	return domain.Dep{Name: a.settings.RootModule, Configuration: configuration}, nil
}

func (a *App) jobs(requested int) int {
	if requested > 0 {
		return requested
	}
	return a.settings.MaxParallelism
}

func (a *App) resolve(ctx context.Context, root domain.Dep, syncer resolver.Syncer, jobs int) (*domain.Closure, error) {
	closure, err := resolver.New(a.provider, syncer, a.vcs, jobs).Resolve(ctx, root)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to resolve dependencies"), "root", root.String())
	}
	a.warnCycles(closure)
	return closure, nil
}

// warnCycles logs the first dependency cycle reachable from the root. Cycles never
// fail update-deps; the build graph rejects them separately.
func (a *App) warnCycles(closure *domain.Closure) {
	edges := func(key string) []string {
		ref, _ := domain.ParseDep(key)
		deps, err := a.provider.Dependencies(ref.Name, ref.Configuration)
		if err != nil {
			return nil
		}
		out := make([]string, 0, len(deps.Items))
		for _, d := range deps.Items {
			target := d.WithoutTreeish()
			if target.Configuration == "" {
				def, err := a.provider.DefaultConfiguration(d.Name)
				if err != nil {
					continue
				}
				target.Configuration = def
			}
			out = append(out, target.Key())
		}
		return out
	}

	if cycle := cycles.FindCycle(closure.Root.Key(), edges); cycle != nil {
		a.logger.Warn("dependency cycle detected", "cycle", strings.Join(cycle, " -> "))
	}
}
