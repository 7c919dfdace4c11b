package domain

// Node is a decoded module.yaml value. The set of implementations is closed:
// ScalarNode, SequenceNode and MappingNode.
type Node interface {
	isNode()
	// Line is the 1-based source line of the value, or 0 when unknown.
	Line() int
}

// ScalarNode is a single string value.
type ScalarNode struct {
	Value  string
	AtLine int
}

// SequenceNode is an ordered list of values.
type SequenceNode struct {
	Items  []Node
	AtLine int
}

// MappingEntry is one key/value pair of a mapping, in document order.
type MappingEntry struct {
	Key   string
	Value Node
}

// MappingNode is an ordered set of key/value pairs.
type MappingNode struct {
	Entries []MappingEntry
	AtLine  int
}

func (ScalarNode) isNode()   {}
func (SequenceNode) isNode() {}
func (MappingNode) isNode()  {}

// Line implements Node.
func (n ScalarNode) Line() int { return n.AtLine }

// Line implements Node.
func (n SequenceNode) Line() int { return n.AtLine }

// Line implements Node.
func (n MappingNode) Line() int { return n.AtLine }

// Get returns the value stored under key.
func (n MappingNode) Get(key string) (Node, bool) {
	for _, e := range n.Entries {
		if e.Key == key {
			return e.Value, true
		}
	}
	return nil, false
}
