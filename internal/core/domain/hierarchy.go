package domain

import (
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// ConfigurationDescriptor declares one named build configuration of a module.
type ConfigurationDescriptor struct {
	Name      string
	Parents   []string
	IsDefault bool
}

// Hierarchy is the inheritance graph of a module's configurations.
type Hierarchy struct {
	names   []string
	parents map[string][]string
	order   []string
	def     string
	defErr  error
}

// NewHierarchy builds the hierarchy for the given descriptors.
// Parents that are not declared are ignored for ordering. Cyclic inheritance is rejected.
func NewHierarchy(descriptors []ConfigurationDescriptor) (*Hierarchy, error) {
	h := &Hierarchy{
		names:   make([]string, 0, len(descriptors)),
		parents: make(map[string][]string, len(descriptors)),
	}

	for _, d := range descriptors {
		if _, exists := h.parents[d.Name]; exists {
			return nil, zerr.With(ErrDuplicateConfiguration, "configuration", d.Name)
		}
		h.names = append(h.names, d.Name)
		h.parents[d.Name] = slices.Clone(d.Parents)
		if h.parents[d.Name] == nil {
			h.parents[d.Name] = []string{}
		}
	}

	if err := h.checkCycles(); err != nil {
		return nil, err
	}

	h.order = h.topologicalOrder()
	h.def, h.defErr = resolveDefault(descriptors)
	return h, nil
}

// checkCycles runs a DFS over declared parents and fails on the first back edge.
func (h *Hierarchy) checkCycles() error {
	state := make(map[string]int, len(h.names)) // 0: unvisited, 1: on stack, 2: done
	var path []string

	var visit func(name string) error
	visit = func(name string) error {
		state[name] = 1
		path = append(path, name)
		for _, p := range h.parents[name] {
			if _, known := h.parents[p]; !known {
				continue
			}
			switch state[p] {
			case 1:
				idx := slices.Index(path, p)
				cycle := append(slices.Clone(path[idx:]), p)
				return zerr.With(ErrCyclicConfigurations, "cycle", strings.Join(cycle, " -> "))
			case 0:
				if err := visit(p); err != nil {
					return err
				}
			}
		}
		state[name] = 2
		path = path[:len(path)-1]
		return nil
	}

	for _, name := range h.names {
		if state[name] == 0 {
			if err := visit(name); err != nil {
				return err
			}
		}
	}
	return nil
}

// topologicalOrder expands breadth-first from configurations without known parents.
// A configuration is admitted once every known parent has been admitted.
func (h *Hierarchy) topologicalOrder() []string {
	admitted := make(map[string]bool, len(h.names))
	order := make([]string, 0, len(h.names))

	ready := func(name string) bool {
		for _, p := range h.parents[name] {
			if _, known := h.parents[p]; known && !admitted[p] {
				return false
			}
		}
		return true
	}

	var queue []string
	for _, name := range h.names {
		if ready(name) {
			admitted[name] = true
			queue = append(queue, name)
		}
	}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		order = append(order, current)

		for _, child := range h.names {
			if admitted[child] || !slices.Contains(h.parents[child], current) {
				continue
			}
			if ready(child) {
				admitted[child] = true
				queue = append(queue, child)
			}
		}
	}

	return order
}

func resolveDefault(descriptors []ConfigurationDescriptor) (string, error) {
	for _, d := range descriptors {
		if d.IsDefault {
			return d.Name, nil
		}
	}
	for _, d := range descriptors {
		if d.Name == DefaultConfiguration {
			return d.Name, nil
		}
	}
	if len(descriptors) == 1 {
		return descriptors[0].Name, nil
	}
	return "", zerr.With(ErrAmbiguousDefault, "configurations", len(descriptors))
}

// Names returns the configuration names in declaration order.
func (h *Hierarchy) Names() []string {
	return slices.Clone(h.names)
}

// Has reports whether the configuration is declared.
func (h *Hierarchy) Has(name string) bool {
	_, ok := h.parents[name]
	return ok
}

// ParentsOf returns the declared parents of a configuration.
func (h *Hierarchy) ParentsOf(name string) []string {
	return slices.Clone(h.parents[name])
}

// AllAncestorsOf returns every configuration reachable through parent links, each once.
func (h *Hierarchy) AllAncestorsOf(name string) []string {
	seen := map[string]bool{name: true}
	var ancestors []string

	queue := slices.Clone(h.parents[name])
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if seen[current] {
			continue
		}
		seen[current] = true
		ancestors = append(ancestors, current)
		queue = append(queue, h.parents[current]...)
	}
	return ancestors
}

// IsAncestor reports whether ancestor is reachable from name through parent links.
func (h *Hierarchy) IsAncestor(ancestor, name string) bool {
	return slices.Contains(h.AllAncestorsOf(name), ancestor)
}

// TopologicalOrder returns every configuration with parents before children.
func (h *Hierarchy) TopologicalOrder() []string {
	return slices.Clone(h.order)
}

// Default returns the default configuration of the module.
func (h *Hierarchy) Default() (string, error) {
	return h.def, h.defErr
}
