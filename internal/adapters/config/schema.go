package config

import (
	"go.trai.ch/tangle/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// decodeDocument parses data into the closed set of domain nodes.
// An empty document decodes to an empty mapping.
func decodeDocument(data []byte) (domain.MappingNode, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return domain.MappingNode{}, zerr.Wrap(err, "failed to parse yaml")
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return domain.MappingNode{}, nil
	}

	root, err := decodeNode(doc.Content[0])
	if err != nil {
		return domain.MappingNode{}, err
	}
	mapping, ok := root.(domain.MappingNode)
	if !ok {
		return domain.MappingNode{}, zerr.With(zerr.New("top level must be a mapping"), "line", root.Line())
	}
	return mapping, nil
}

func decodeNode(n *yaml.Node) (domain.Node, error) {
	switch n.Kind {
	case yaml.AliasNode:
		return decodeNode(n.Alias)
	case yaml.ScalarNode:
		value := n.Value
		if n.Tag == "!!null" {
			value = ""
		}
		return domain.ScalarNode{Value: value, AtLine: n.Line}, nil
	case yaml.SequenceNode:
		seq := domain.SequenceNode{Items: make([]domain.Node, 0, len(n.Content)), AtLine: n.Line}
		for _, item := range n.Content {
			decoded, err := decodeNode(item)
			if err != nil {
				return nil, err
			}
			seq.Items = append(seq.Items, decoded)
		}
		return seq, nil
	case yaml.MappingNode:
		mapping := domain.MappingNode{Entries: make([]domain.MappingEntry, 0, len(n.Content)/2), AtLine: n.Line}
		for i := 0; i+1 < len(n.Content); i += 2 {
			key, value := n.Content[i], n.Content[i+1]
			if key.Kind != yaml.ScalarNode {
				return nil, zerr.With(zerr.New("mapping keys must be scalars"), "line", key.Line)
			}
			decoded, err := decodeNode(value)
			if err != nil {
				return nil, err
			}
			mapping.Entries = append(mapping.Entries, domain.MappingEntry{Key: key.Value, Value: decoded})
		}
		return mapping, nil
	default:
		return nil, zerr.With(zerr.New("unsupported yaml node"), "line", n.Line)
	}
}
