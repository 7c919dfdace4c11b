// Package resolver discovers the transitive dependency closure of a root module.
//
// Resolution runs in rounds. Each round drains the work queue, synchronizes every
// accepted module once in parallel, then discovers the dependencies of the
// synchronized modules single-threaded. No work of the next round starts before
// the current round is complete.
package resolver

import (
	"context"
	"runtime"
	"slices"

	"go.trai.ch/tangle/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Syncer moves the checkout of a module to the requested revision.
type Syncer interface {
	Sync(ctx context.Context, req domain.SyncRequest) error
}

// SyncFunc adapts a function to the Syncer interface.
type SyncFunc func(ctx context.Context, req domain.SyncRequest) error

// Sync calls f.
func (f SyncFunc) Sync(ctx context.Context, req domain.SyncRequest) error {
	return f(ctx, req)
}

// NoSync leaves every checkout as it is.
type NoSync struct{}

// Sync does nothing.
func (NoSync) Sync(context.Context, domain.SyncRequest) error { return nil }

// DependencySource supplies the effective dependencies of a (module, configuration).
// It is only called between rounds, never concurrently.
type DependencySource interface {
	Dependencies(module, configuration string) (domain.EffectiveDependencySet, error)
	DefaultConfiguration(module string) (string, error)
	Ancestors(module, configuration string) ([]string, error)
	// Forget invalidates what is known about module after its checkout moved.
	Forget(module string)
}

// BranchReader reports the branch a module is checked out on.
type BranchReader interface {
	CurrentLocalTreeish(ctx context.Context, module string) (string, error)
}

// Resolver computes dependency closures.
type Resolver struct {
	source      DependencySource
	syncer      Syncer
	branches    BranchReader
	parallelism int
}

// New creates a Resolver. A parallelism below one uses the number of CPUs.
func New(source DependencySource, syncer Syncer, branches BranchReader, parallelism int) *Resolver {
	if parallelism < 1 {
		parallelism = runtime.NumCPU()
	}
	return &Resolver{
		source:      source,
		syncer:      syncer,
		branches:    branches,
		parallelism: parallelism,
	}
}

// moduleState is what one run knows about a module beyond the closure entry.
type moduleState struct {
	synced bool
	// discovered lists the configurations whose dependencies were enqueued.
	discovered []string
}

type run struct {
	r       *Resolver
	closure *domain.Closure
	states  map[string]*moduleState
}

// batchItem is a module accepted for synchronization in the current round.
type batchItem struct {
	name     string
	treeish  string
	escalate bool
}

// Resolve computes the closure of root. The root module itself is never synchronized.
func (r *Resolver) Resolve(ctx context.Context, root domain.Dep) (*domain.Closure, error) {
	if root.Configuration == "" {
		def, err := r.source.DefaultConfiguration(root.Name)
		if err != nil {
			return nil, err
		}
		root.Configuration = def
	}

	state := &run{
		r:       r,
		closure: domain.NewClosure(root),
		states:  make(map[string]*moduleState),
	}

	rootEntry := state.closure.Entry(root.Name)
	rootEntry.AddConfiguration(root.Configuration)
	rootState := state.state(root.Name)
	rootState.synced = true
	rootState.discovered = append(rootState.discovered, root.Configuration)

	deps, err := r.source.Dependencies(root.Name, root.Configuration)
	if err != nil {
		return nil, err
	}
	forced, err := r.substituteCurrentBranch(ctx, root.Name, deps.ForcedBranches)
	if err != nil {
		return nil, err
	}
	state.closure.ForcedBranches = forced

	queue := requestsFrom(root.Name, deps.Items)
	for len(queue) > 0 {
		queue, err = state.round(ctx, queue)
		if err != nil {
			return nil, err
		}
	}

	return state.closure, nil
}

func (r *Resolver) substituteCurrentBranch(ctx context.Context, root string, forced []string) ([]string, error) {
	if !slices.Contains(forced, domain.CurrentBranchPlaceholder) {
		return slices.Clone(forced), nil
	}

	current, err := r.branches.CurrentLocalTreeish(ctx, root)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read the current branch"), "module", root)
	}

	out := make([]string, 0, len(forced))
	for _, b := range forced {
		if b == domain.CurrentBranchPlaceholder {
			b = current
		}
		if !slices.Contains(out, b) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *run) state(name string) *moduleState {
	st, ok := s.states[name]
	if !ok {
		st = &moduleState{}
		s.states[name] = st
	}
	return st
}

// round processes one queue and returns the queue of the next round.
func (s *run) round(ctx context.Context, queue []domain.Request) ([]domain.Request, error) {
	var (
		batch    []*batchItem
		deferred []domain.Request
		// known lists already synchronized modules that got new configurations.
		known []string
	)

	inBatch := func(name string) *batchItem {
		for _, item := range batch {
			if item.name == name {
				return item
			}
		}
		return nil
	}

	for _, req := range queue {
		name := req.Dep.Name
		entry := s.closure.Entry(name)
		entry.Requests = append(entry.Requests, req)
		st := s.state(name)

		configuration := req.Dep.Configuration
		if st.synced && configuration == "" {
			def, err := s.r.source.DefaultConfiguration(name)
			if err != nil {
				return nil, err
			}
			configuration = def
		}

		if name == s.closure.Root.Name {
			entry.AddConfiguration(configuration)
			continue
		}

		treeish := req.Dep.Treeish
		if treeish != "" {
			if entry.Treeish != "" && entry.Treeish != treeish {
				return nil, conflict(name, entry.Treeish, treeish, req.Parent)
			}
			if item := inBatch(name); item != nil && item.treeish != "" && item.treeish != treeish {
				return nil, conflict(name, item.treeish, treeish, req.Parent)
			}
		}

		entry.AddConfiguration(configuration)

		if st.synced && (treeish == "" || treeish == entry.Treeish) {
			if !slices.Contains(known, name) {
				known = append(known, name)
			}
			continue
		}

		if inBatch(name) != nil {
			deferred = append(deferred, req)
			continue
		}

		batch = append(batch, &batchItem{
			name:     name,
			treeish:  treeish,
			escalate: st.synced,
		})
	}

	if err := s.syncBatch(ctx, batch); err != nil {
		return nil, err
	}

	next := deferred
	for _, item := range batch {
		st := s.state(item.name)
		if item.escalate {
			st.discovered = nil
		}
		discovered, err := s.discover(item.name)
		if err != nil {
			return nil, err
		}
		next = append(next, discovered...)
	}
	for _, name := range known {
		if inBatch(name) != nil {
			continue
		}
		discovered, err := s.discover(name)
		if err != nil {
			return nil, err
		}
		next = append(next, discovered...)
	}

	return next, nil
}

// syncBatch synchronizes every batch item in parallel and commits the results.
func (s *run) syncBatch(ctx context.Context, batch []*batchItem) error {
	if len(batch) == 0 {
		return nil
	}

	forced := slices.Clone(s.closure.ForcedBranches)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.r.parallelism)
	for _, item := range batch {
		g.Go(func() error {
			err := s.r.syncer.Sync(gctx, domain.SyncRequest{
				Module:         item.name,
				Treeish:        item.treeish,
				ForcedBranches: forced,
			})
			if err != nil {
				return zerr.With(zerr.Wrap(err, "failed to synchronize module"), "module", item.name)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, item := range batch {
		entry := s.closure.Entry(item.name)
		entry.Syncs++
		if item.treeish != "" {
			entry.Treeish = item.treeish
		}
		s.state(item.name).synced = true
		s.r.source.Forget(item.name)
	}
	return nil
}

// discover enqueues the dependencies of every recorded configuration of name
// that was neither discovered yet nor covered by a discovered descendant.
func (s *run) discover(name string) ([]domain.Request, error) {
	entry := s.closure.Entry(name)
	st := s.state(name)

	def, err := s.r.source.DefaultConfiguration(name)
	if err != nil {
		return nil, err
	}
	normalized := make([]string, 0, len(entry.Configurations))
	for _, c := range entry.Configurations {
		if c == "" {
			c = def
		}
		if !slices.Contains(normalized, c) {
			normalized = append(normalized, c)
		}
	}
	entry.Configurations = normalized

	var out []domain.Request
	for _, configuration := range normalized {
		if slices.Contains(st.discovered, configuration) {
			continue
		}
		covered, err := s.covered(name, configuration, st.discovered)
		if err != nil {
			return nil, err
		}
		if covered {
			continue
		}

		deps, err := s.r.source.Dependencies(name, configuration)
		if err != nil {
			return nil, zerr.With(err, "configuration", configuration)
		}
		st.discovered = append(st.discovered, configuration)
		out = append(out, requestsFrom(name, deps.Items)...)
	}
	return out, nil
}

// covered reports whether configuration is an ancestor of a discovered configuration,
// in which case its dependencies are already part of the closure.
func (s *run) covered(name, configuration string, discovered []string) (bool, error) {
	for _, d := range discovered {
		ancestors, err := s.r.source.Ancestors(name, d)
		if err != nil {
			return false, err
		}
		if slices.Contains(ancestors, configuration) {
			return true, nil
		}
	}
	return false, nil
}

func requestsFrom(parent string, deps []domain.Dep) []domain.Request {
	out := make([]domain.Request, 0, len(deps))
	for _, d := range deps {
		out = append(out, domain.Request{Dep: d, Parent: parent})
	}
	return out
}

func conflict(module, committed, requested, parent string) error {
	err := zerr.With(domain.ErrTreeishConflict, "module", module)
	err = zerr.With(err, "treeish", committed)
	err = zerr.With(err, "requested", requested)
	return zerr.With(err, "requested_by", parent)
}
