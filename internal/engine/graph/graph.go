// Package graph turns a resolved closure into the build graph consumed by the scheduler.
package graph

import (
	"context"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/tangle/internal/core/domain"
	"go.trai.ch/tangle/internal/core/ports"
	"go.trai.ch/tangle/internal/engine/cycles"
	"go.trai.ch/zerr"
)

// Source supplies the merged sections of a (module, configuration).
type Source interface {
	Dependencies(module, configuration string) (domain.EffectiveDependencySet, error)
	DefaultConfiguration(module string) (string, error)
	Ancestors(module, configuration string) ([]string, error)
	Install(module, configuration string) (domain.EffectiveInstallSet, error)
}

// Builder computes build graphs.
type Builder struct {
	source    Source
	vcs       ports.VCS
	hasher    ports.Hasher
	verifier  ports.Verifier
	workspace string
}

// NewBuilder creates a Builder for modules checked out below workspace.
func NewBuilder(source Source, vcs ports.VCS, hasher ports.Hasher, verifier ports.Verifier, workspace string) *Builder {
	return &Builder{
		source:    source,
		vcs:       vcs,
		hasher:    hasher,
		verifier:  verifier,
		workspace: workspace,
	}
}

// Options controls how changed modules are selected.
type Options struct {
	// Force marks every module as changed.
	Force bool
	// ExcludeRoot leaves the root module's own configurations out of the build.
	ExcludeRoot bool
}

// Build computes the build graph of closure. cache is the build cache of the previous runs.
func (b *Builder) Build(
	ctx context.Context,
	closure *domain.Closure,
	cache domain.BuildCache,
	opts Options,
) (domain.BuildGraph, error) {
	nodes, cover, err := b.nodes(closure)
	if err != nil {
		return domain.BuildGraph{}, err
	}

	edges, err := b.edges(nodes, cover)
	if err != nil {
		return domain.BuildGraph{}, err
	}

	order, err := buildOrder(nodes, edges)
	if err != nil {
		return domain.BuildGraph{}, err
	}

	hashes, err := b.commitHashes(ctx, closure.Modules())
	if err != nil {
		return domain.BuildGraph{}, err
	}

	graph := domain.BuildGraph{
		BuildOrder:           order,
		Edges:                edges,
		CommitHashesByModule: hashes,
	}

	changed, err := b.changedModules(graph, cache, opts)
	if err != nil {
		return domain.BuildGraph{}, err
	}
	graph.ChangedModules = changed

	if opts.ExcludeRoot {
		isRoot := func(d domain.Dep) bool { return d.Name == closure.Root.Name }
		graph.BuildOrder = slices.DeleteFunc(graph.BuildOrder, isRoot)
		graph.ChangedModules = slices.DeleteFunc(graph.ChangedModules, isRoot)
	}
	return graph, nil
}

// nodes returns one node per requested configuration that is not an ancestor of another
// requested configuration of the same module. cover maps every requested reference to
// the node that builds it.
func (b *Builder) nodes(closure *domain.Closure) ([]domain.Dep, map[domain.Dep]domain.Dep, error) {
	var nodes []domain.Dep
	cover := make(map[domain.Dep]domain.Dep)

	for _, module := range closure.Modules() {
		entry, ok := closure.Entries[module]
		if !ok {
			continue
		}
		def, err := b.source.DefaultConfiguration(module)
		if err != nil {
			return nil, nil, err
		}
		var requested []string
		for _, c := range entry.Configurations {
			if c == "" {
				c = def
			}
			if !slices.Contains(requested, c) {
				requested = append(requested, c)
			}
		}
		if len(requested) == 0 {
			requested = []string{def}
		}

		ancestors := make(map[string][]string, len(requested))
		for _, c := range requested {
			a, err := b.source.Ancestors(module, c)
			if err != nil {
				return nil, nil, err
			}
			ancestors[c] = a
		}

		for _, c := range requested {
			node := domain.Dep{Name: module, Configuration: c}
			owner := c
			for _, other := range requested {
				if other != c && slices.Contains(ancestors[other], c) {
					owner = other
					break
				}
			}
			if owner == c {
				nodes = append(nodes, node)
			}
			cover[node] = domain.Dep{Name: module, Configuration: owner}
		}
	}

	return nodes, cover, nil
}

func (b *Builder) edges(nodes []domain.Dep, cover map[domain.Dep]domain.Dep) (map[domain.Dep][]domain.Dep, error) {
	edges := make(map[domain.Dep][]domain.Dep, len(nodes))
	for _, node := range nodes {
		deps, err := b.source.Dependencies(node.Name, node.Configuration)
		if err != nil {
			return nil, err
		}
		for _, d := range deps.Items {
			target := d.WithoutTreeish()
			if target.Configuration == "" {
				def, err := b.source.DefaultConfiguration(d.Name)
				if err != nil {
					return nil, err
				}
				target.Configuration = def
			}
			if owner, ok := cover[target]; ok {
				target = owner
			}
			if !slices.Contains(edges[node], target) {
				edges[node] = append(edges[node], target)
			}
		}
	}
	return edges, nil
}

// buildOrder is a post-order DFS over nodes, dependencies first.
func buildOrder(nodes []domain.Dep, edges map[domain.Dep][]domain.Dep) ([]domain.Dep, error) {
	known := make(map[domain.Dep]bool, len(nodes))
	for _, n := range nodes {
		known[n] = true
	}

	edgesOf := func(key string) []string {
		var out []string
		for _, d := range edges[parseKey(key)] {
			if known[d] {
				out = append(out, d.Key())
			}
		}
		return out
	}

	visited := make(map[domain.Dep]bool, len(nodes))
	order := make([]domain.Dep, 0, len(nodes))

	var visit func(n domain.Dep)
	visit = func(n domain.Dep) {
		visited[n] = true
		for _, d := range edges[n] {
			if known[d] && !visited[d] {
				visit(d)
			}
		}
		order = append(order, n)
	}

	for _, n := range nodes {
		if visited[n] {
			continue
		}
		if cycle := cycles.FindCycle(n.Key(), edgesOf); cycle != nil {
			return nil, zerr.With(domain.ErrCycleDetected, "cycle", strings.Join(cycle, " -> "))
		}
		visit(n)
	}
	return order, nil
}

func parseKey(key string) domain.Dep {
	dep, _ := domain.ParseDep(key)
	return dep
}

func (b *Builder) commitHashes(ctx context.Context, modules []string) (map[string]string, error) {
	hashes := make(map[string]string, len(modules))
	for _, module := range modules {
		hash, err := b.vcs.CurrentCommitHash(ctx, module)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to read commit hash"), "module", module)
		}

		dirty, err := b.vcs.HasLocalChanges(ctx, module)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to read working tree state"), "module", module)
		}
		if dirty {
			fingerprint, err := b.hasher.HashTree(filepath.Join(b.workspace, module))
			if err != nil {
				return nil, zerr.With(zerr.Wrap(err, "failed to fingerprint working tree"), "module", module)
			}
			hash += "+" + fingerprint
		}
		hashes[module] = hash
	}
	return hashes, nil
}

// changedModules selects every node whose cache entry is missing or stale, whose
// artifacts are missing, or that depends on a changed node.
func (b *Builder) changedModules(graph domain.BuildGraph, cache domain.BuildCache, opts Options) ([]domain.Dep, error) {
	changed := make(map[domain.Dep]bool, len(graph.BuildOrder))
	var out []domain.Dep

	for _, node := range graph.BuildOrder {
		isChanged := opts.Force
		if !isChanged {
			for _, d := range graph.Edges[node] {
				if changed[d] {
					isChanged = true
					break
				}
			}
		}
		if !isChanged {
			isChanged = stale(graph, cache, node)
		}
		if !isChanged {
			missing, err := b.artifactsMissing(node)
			if err != nil {
				return nil, err
			}
			isChanged = missing
		}

		if isChanged {
			changed[node] = true
			out = append(out, node)
		}
	}
	return out, nil
}

func stale(graph domain.BuildGraph, cache domain.BuildCache, node domain.Dep) bool {
	entry, ok := cache[node.Key()]
	if !ok {
		return true
	}
	if entry[node.Name] != graph.CommitHashesByModule[node.Name] {
		return true
	}
	for _, d := range graph.TransitiveDeps(node) {
		if entry[d.Name] != graph.CommitHashesByModule[d.Name] {
			return true
		}
	}
	return false
}

func (b *Builder) artifactsMissing(node domain.Dep) (bool, error) {
	install, err := b.source.Install(node.Name, node.Configuration)
	if err != nil {
		return false, err
	}
	if len(install.CurrentConfigurationArtifacts) == 0 {
		return false, nil
	}
	ok, err := b.verifier.VerifyOutputs(filepath.Join(b.workspace, node.Name), install.CurrentConfigurationArtifacts)
	if err != nil {
		return false, zerr.With(zerr.Wrap(err, "failed to verify artifacts"), "module", node.Name)
	}
	return !ok, nil
}
