package document

import (
	"iter"

	"go.yaml.in/yaml/v4"
)

// Resolve unwraps document and alias nodes down to the node they stand for.
// Returns nil for a nil input.
func Resolve(n *yaml.Node) *yaml.Node {
	for n != nil {
		switch n.Kind {
		case yaml.DocumentNode:
			if len(n.Content) == 0 {
				return nil
			}
			n = n.Content[0]
		case yaml.AliasNode:
			n = n.Alias
		default:
			return n
		}
	}
	return nil
}

func IsMapping(n *yaml.Node) bool {
	n = Resolve(n)
	return n != nil && n.Kind == yaml.MappingNode
}

func IsSequence(n *yaml.Node) bool {
	n = Resolve(n)
	return n != nil && n.Kind == yaml.SequenceNode
}

// MapGet returns the value for key in a mapping node, or nil when the node
// is not a mapping or the key is absent.
func MapGet(n *yaml.Node, key string) *yaml.Node {
	n = Resolve(n)
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i < len(n.Content)-1; i += 2 {
		if n.Content[i].Value == key {
			return Resolve(n.Content[i+1])
		}
	}
	return nil
}

// MapPairs iterates the entries of a mapping node in declaration order.
// Non-mapping nodes yield nothing.
func MapPairs(n *yaml.Node) iter.Seq2[string, *yaml.Node] {
	return func(yield func(string, *yaml.Node) bool) {
		n := Resolve(n)
		if n == nil || n.Kind != yaml.MappingNode {
			return
		}
		for i := 0; i < len(n.Content)-1; i += 2 {
			if !yield(n.Content[i].Value, Resolve(n.Content[i+1])) {
				return
			}
		}
	}
}

// Items returns the elements of a sequence node, or nil for anything else.
func Items(n *yaml.Node) []*yaml.Node {
	n = Resolve(n)
	if n == nil || n.Kind != yaml.SequenceNode {
		return nil
	}
	items := make([]*yaml.Node, 0, len(n.Content))
	for _, c := range n.Content {
		items = append(items, Resolve(c))
	}
	return items
}

// ScalarString returns the string value of a scalar string node.
func ScalarString(n *yaml.Node) (string, bool) {
	n = Resolve(n)
	if n == nil || n.Kind != yaml.ScalarNode || n.Tag != "!!str" {
		return "", false
	}
	return n.Value, true
}

// ScalarBool returns the value of a scalar boolean node.
func ScalarBool(n *yaml.Node) (bool, bool) {
	n = Resolve(n)
	if n == nil || n.Kind != yaml.ScalarNode || n.Tag != "!!bool" {
		return false, false
	}
	return n.Value == "true", true
}

// DecodeValue lowers a node into plain Go values (maps, slices, scalars).
// Mapping order is not preserved; callers that care about order work on the
// node directly.
func DecodeValue(n *yaml.Node) any {
	n = Resolve(n)
	if n == nil {
		return nil
	}
	var v any
	if err := n.Decode(&v); err != nil {
		return n.Value
	}
	return v
}
