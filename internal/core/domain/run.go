package domain

import (
	"sync"
	"sync/atomic"
	"time"
)

// RunStats holds the counters of one command run. It is created per run and
// passed down explicitly; nothing in the process shares it implicitly.
type RunStats struct {
	synced    atomic.Int64
	built     atomic.Int64
	cached    atomic.Int64
	buildTime atomic.Int64

	mu   sync.Mutex
	once map[string]struct{}
}

// NewRunStats creates empty run statistics.
func NewRunStats() *RunStats {
	return &RunStats{once: make(map[string]struct{})}
}

// AddSynced counts one module synchronization.
func (s *RunStats) AddSynced() { s.synced.Add(1) }

// AddBuilt counts one module build and its duration.
func (s *RunStats) AddBuilt(d time.Duration) {
	s.built.Add(1)
	s.buildTime.Add(int64(d))
}

// AddCached counts one module skipped because it was unchanged.
func (s *RunStats) AddCached() { s.cached.Add(1) }

// Synced returns the number of synchronizations.
func (s *RunStats) Synced() int64 { return s.synced.Load() }

// Built returns the number of builds.
func (s *RunStats) Built() int64 { return s.built.Load() }

// Cached returns the number of modules skipped as unchanged.
func (s *RunStats) Cached() int64 { return s.cached.Load() }

// BuildTime returns the cumulative build time.
func (s *RunStats) BuildTime() time.Duration { return time.Duration(s.buildTime.Load()) }

// Once reports true the first time it is called with key during this run.
func (s *RunStats) Once(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, seen := s.once[key]; seen {
		return false
	}
	s.once[key] = struct{}{}
	return true
}
