package domain

// BuildGraph is the input of the build scheduler.
type BuildGraph struct {
	// BuildOrder lists (module, configuration) references with dependencies first.
	BuildOrder []Dep
	// Edges maps a reference to the references it depends on.
	Edges map[Dep][]Dep
	// ChangedModules lists the references that must be rebuilt.
	ChangedModules []Dep
	// CommitHashesByModule maps module names to the revision currently checked out.
	CommitHashesByModule map[string]string
}

// IsChanged reports whether ref needs a rebuild.
func (g BuildGraph) IsChanged(ref Dep) bool {
	for _, c := range g.ChangedModules {
		if c == ref {
			return true
		}
	}
	return false
}

// TransitiveDeps returns every reference reachable from ref through Edges, excluding ref.
func (g BuildGraph) TransitiveDeps(ref Dep) []Dep {
	seen := map[Dep]bool{ref: true}
	var out []Dep
	stack := append([]Dep(nil), g.Edges[ref]...)
	for len(stack) > 0 {
		d := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
		stack = append(stack, g.Edges[d]...)
	}
	return out
}

// BuildCache maps a built reference key to the commit hash of itself and of
// every dependency it was built against, keyed by module name.
type BuildCache map[string]map[string]string

// Clone returns a deep copy of the cache.
func (c BuildCache) Clone() BuildCache {
	out := make(BuildCache, len(c))
	for k, v := range c {
		inner := make(map[string]string, len(v))
		for dk, dv := range v {
			inner[dk] = dv
		}
		out[k] = inner
	}
	return out
}
