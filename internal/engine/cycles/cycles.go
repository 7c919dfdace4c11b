// Package cycles finds dependency cycles between (module, configuration) nodes.
package cycles

// EdgesFunc returns the nodes a node depends on. Nodes are "module/configuration" keys.
type EdgesFunc func(node string) []string

// FindCycle runs a depth-first search from root and returns the first cycle found
// as the path from root to the repeated node, or nil when the graph reachable from
// root is acyclic.
func FindCycle(root string, edges EdgesFunc) []string {
	f := finder{
		edges:   edges,
		onStack: make(map[string]bool),
		visited: make(map[string]bool),
	}
	return f.visit(root)
}

type finder struct {
	edges   EdgesFunc
	onStack map[string]bool
	visited map[string]bool
	path    []string
}

func (f *finder) visit(node string) []string {
	f.onStack[node] = true
	f.path = append(f.path, node)

	for _, next := range f.edges(node) {
		if f.onStack[next] {
			cycle := make([]string, 0, len(f.path)+1)
			cycle = append(cycle, f.path...)
			return append(cycle, next)
		}
		if f.visited[next] {
			continue
		}
		if cycle := f.visit(next); cycle != nil {
			return cycle
		}
	}

	f.onStack[node] = false
	f.visited[node] = true
	f.path = f.path[:len(f.path)-1]
	return nil
}
