package domain

import "slices"

// Request is a dependency reference together with the module that asked for it.
type Request struct {
	Dep    Dep
	Parent string
}

// ClosureEntry is the resolver's record of one module.
type ClosureEntry struct {
	Name string
	// Treeish is the committed treeish, empty while the module is unpinned.
	Treeish string
	// Configurations lists every configuration requested so far, in request order.
	Configurations []string
	// Requests lists every (reference, parent) pair seen for the module.
	Requests []Request
	// Syncs counts how many times the module was synchronized.
	Syncs int
}

// AddConfiguration records a requested configuration once.
func (e *ClosureEntry) AddConfiguration(configuration string) bool {
	if slices.Contains(e.Configurations, configuration) {
		return false
	}
	e.Configurations = append(e.Configurations, configuration)
	return true
}

// Closure is the result of one closure resolution run.
type Closure struct {
	Root           Dep
	ForcedBranches []string
	// Order lists module names in the order they were first seen.
	Order   []string
	Entries map[string]*ClosureEntry
}

// NewClosure creates an empty closure for root.
func NewClosure(root Dep) *Closure {
	return &Closure{
		Root:    root,
		Entries: make(map[string]*ClosureEntry),
	}
}

// Entry returns the record for name, creating it on first use.
func (c *Closure) Entry(name string) *ClosureEntry {
	if e, ok := c.Entries[name]; ok {
		return e
	}
	e := &ClosureEntry{Name: name}
	c.Entries[name] = e
	c.Order = append(c.Order, name)
	return e
}

// Modules returns every module of the closure, root first.
func (c *Closure) Modules() []string {
	modules := make([]string, 0, len(c.Order)+1)
	modules = append(modules, c.Root.Name)
	for _, name := range c.Order {
		if name != c.Root.Name {
			modules = append(modules, name)
		}
	}
	return modules
}
