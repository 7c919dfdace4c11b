// Package scheduler builds the modules of a build graph in dependency order.
package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.trai.ch/tangle/internal/core/domain"
	"go.trai.ch/tangle/internal/core/ports"
	"go.trai.ch/zerr"
)

// Scheduler manages the execution of module builds in the build graph.
type Scheduler struct {
	builder   ports.Builder
	store     ports.BuildCacheStore
	telemetry ports.Telemetry

	mu           sync.RWMutex
	moduleStatus map[domain.Dep]domain.ModuleStatus
}

// NewScheduler creates a new Scheduler with the given dependencies.
func NewScheduler(
	builder ports.Builder,
	store ports.BuildCacheStore,
	telemetry ports.Telemetry,
) *Scheduler {
	return &Scheduler{
		builder:      builder,
		store:        store,
		telemetry:    telemetry,
		moduleStatus: make(map[domain.Dep]domain.ModuleStatus),
	}
}

// initStatuses sets every module of the build order to pending.
func (s *Scheduler) initStatuses(order []domain.Dep) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.moduleStatus = make(map[domain.Dep]domain.ModuleStatus, len(order))
	for _, ref := range order {
		s.moduleStatus[ref] = domain.StatusPending
	}
}

// updateStatus updates the status of a module.
func (s *Scheduler) updateStatus(ref domain.Dep, status domain.ModuleStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.moduleStatus[ref] = status
}

// skipPending marks every module that never started as skipped.
func (s *Scheduler) skipPending() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for ref, status := range s.moduleStatus {
		if status == domain.StatusPending {
			s.moduleStatus[ref] = domain.StatusSkipped
		}
	}
}

// Run builds the changed modules of graph with at most parallelism builds in flight.
// Unchanged modules are marked built without building them. After the first failure
// no new build is started; builds already running finish. The updated cache is
// persisted before Run returns. stats may be nil.
func (s *Scheduler) Run(
	ctx context.Context,
	graph domain.BuildGraph,
	cache domain.BuildCache,
	parallelism int,
	stats *domain.RunStats,
) (bool, error) {
	if cache == nil {
		cache = make(domain.BuildCache)
	}
	if stats == nil {
		stats = domain.NewRunStats()
	}
	s.initStatuses(graph.BuildOrder)

	var runErr error
	if parallelism <= 1 {
		runErr = s.runSequential(ctx, graph, cache, stats)
	} else {
		runErr = s.newRunState(ctx, graph, cache, parallelism, stats).runExecutionLoop()
	}

	if runErr != nil {
		s.skipPending()
	}

	if err := s.store.Save(cache); err != nil {
		return false, errors.Join(runErr, zerr.Wrap(err, "failed to persist build cache"))
	}

	if runErr != nil {
		return false, errors.Join(domain.ErrBuildFailed, runErr)
	}
	return true, nil
}

func (s *Scheduler) runSequential(
	ctx context.Context,
	graph domain.BuildGraph,
	cache domain.BuildCache,
	stats *domain.RunStats,
) error {
	for _, ref := range graph.BuildOrder {
		if err := ctx.Err(); err != nil {
			return err
		}

		if !graph.IsChanged(ref) {
			s.markCached(ctx, ref, graph, stats)
			continue
		}

		s.updateStatus(ref, domain.StatusRunning)
		res := s.build(ctx, ref, graph)
		if res.err != nil {
			s.updateStatus(ref, domain.StatusFailed)
			return moduleFailure(res)
		}
		s.updateStatus(ref, domain.StatusCompleted)
		stats.AddBuilt(res.duration)
		recordBuild(cache, graph, ref)
	}
	return nil
}

func (s *Scheduler) markCached(ctx context.Context, ref domain.Dep, graph domain.BuildGraph, stats *domain.RunStats) {
	_, vertex := s.telemetry.Record(ctx, ref.String(), ports.WithInputs(keys(graph.Edges[ref])...))
	vertex.Cached()
	vertex.Complete(nil)
	s.updateStatus(ref, domain.StatusCached)
	stats.AddCached()
}

type result struct {
	ref      domain.Dep
	err      error
	duration time.Duration
}

// build runs one module build inside its own telemetry vertex.
func (s *Scheduler) build(ctx context.Context, ref domain.Dep, graph domain.BuildGraph) result {
	ctx, vertex := s.telemetry.Record(ctx, ref.String(), ports.WithInputs(keys(graph.Edges[ref])...))

	start := time.Now()
	err := s.builder.Build(ctx, ref)
	vertex.Complete(err)

	return result{ref: ref, err: err, duration: time.Since(start)}
}

func moduleFailure(res result) error {
	return zerr.With(zerr.Wrap(res.err, "module build failed"), "module", res.ref.String())
}

// recordBuild stores the commit hashes ref was built against.
func recordBuild(cache domain.BuildCache, graph domain.BuildGraph, ref domain.Dep) {
	entry := map[string]string{ref.Name: graph.CommitHashesByModule[ref.Name]}
	for _, dep := range graph.TransitiveDeps(ref) {
		entry[dep.Name] = graph.CommitHashesByModule[dep.Name]
	}
	cache[ref.Key()] = entry
}

func keys(refs []domain.Dep) []string {
	out := make([]string, len(refs))
	for i, r := range refs {
		out[i] = r.String()
	}
	return out
}

type schedulerRunState struct {
	graph       domain.BuildGraph
	cache       domain.BuildCache
	stats       *domain.RunStats
	inDegree    map[domain.Dep]int
	dependents  map[domain.Dep][]domain.Dep
	ready       []domain.Dep
	active      int
	failed      bool
	resultsCh   chan result
	errs        error
	ctx         context.Context
	parallelism int
	s           *Scheduler
}

func (s *Scheduler) newRunState(
	ctx context.Context,
	graph domain.BuildGraph,
	cache domain.BuildCache,
	parallelism int,
	stats *domain.RunStats,
) *schedulerRunState {
	inOrder := make(map[domain.Dep]bool, len(graph.BuildOrder))
	for _, ref := range graph.BuildOrder {
		inOrder[ref] = true
	}

	inDegree := make(map[domain.Dep]int, len(graph.BuildOrder))
	dependents := make(map[domain.Dep][]domain.Dep)
	for _, ref := range graph.BuildOrder {
		// Edges leaving the build order count as satisfied.
		for _, dep := range graph.Edges[ref] {
			if inOrder[dep] {
				inDegree[ref]++
				dependents[dep] = append(dependents[dep], ref)
			}
		}
	}

	var ready []domain.Dep
	for _, ref := range graph.BuildOrder {
		if inDegree[ref] == 0 {
			ready = append(ready, ref)
		}
	}

	return &schedulerRunState{
		graph:       graph,
		cache:       cache,
		stats:       stats,
		inDegree:    inDegree,
		dependents:  dependents,
		ready:       ready,
		resultsCh:   make(chan result, parallelism),
		ctx:         ctx,
		parallelism: parallelism,
		s:           s,
	}
}

func (state *schedulerRunState) runExecutionLoop() error {
	for !state.isDone() {
		state.schedule()

		if state.isDone() {
			break
		}

		if state.ctx.Err() != nil && state.active == 0 {
			return errors.Join(state.errs, state.ctx.Err())
		}

		select {
		case res := <-state.resultsCh:
			state.handleResult(res)
		case <-state.ctx.Done():
		}
	}

	if state.ctx.Err() != nil {
		state.errs = errors.Join(state.errs, state.ctx.Err())
	}

	return state.errs
}

func (state *schedulerRunState) isDone() bool {
	if state.failed {
		return state.active == 0
	}
	return state.active == 0 && len(state.ready) == 0
}

func (state *schedulerRunState) schedule() {
	for len(state.ready) > 0 && !state.failed && state.ctx.Err() == nil {
		ref := state.ready[0]

		if !state.graph.IsChanged(ref) {
			state.ready = state.ready[1:]
			state.s.markCached(state.ctx, ref, state.graph, state.stats)
			state.release(ref)
			continue
		}

		if state.active >= state.parallelism {
			return
		}
		state.ready = state.ready[1:]

		state.active++
		state.s.updateStatus(ref, domain.StatusRunning)

		go func(ref domain.Dep) {
			state.resultsCh <- state.s.build(state.ctx, ref, state.graph)
		}(ref)
	}
}

func (state *schedulerRunState) handleResult(res result) {
	state.active--

	if res.err != nil {
		if state.errs == nil {
			state.errs = moduleFailure(res)
		}
		state.failed = true
		state.s.updateStatus(res.ref, domain.StatusFailed)
		return
	}

	state.s.updateStatus(res.ref, domain.StatusCompleted)
	state.stats.AddBuilt(res.duration)
	recordBuild(state.cache, state.graph, res.ref)
	state.release(res.ref)
}

// release makes the dependents of a built module eligible once all their dependencies are built.
func (state *schedulerRunState) release(ref domain.Dep) {
	for _, dep := range state.dependents[ref] {
		state.inDegree[dep]--
		if state.inDegree[dep] == 0 {
			state.ready = append(state.ready, dep)
		}
	}
}
