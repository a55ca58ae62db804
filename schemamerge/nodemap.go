package schemamerge

import "iter"

// NodeMap is an insertion-ordered map from names to sub-schemas, used for
// properties and patternProperties. The zero value is an empty map ready
// to use.
type NodeMap struct {
	nodes map[string]*Node
	keys  []string
}

// Len returns the number of entries.
func (m *NodeMap) Len() int {
	if m == nil {
		return 0
	}

	return len(m.keys)
}

// Get returns the node stored under key.
func (m *NodeMap) Get(key string) (*Node, bool) {
	if m == nil {
		return nil, false
	}

	n, ok := m.nodes[key]

	return n, ok
}

// Set stores n under key. A new key is appended; an existing key keeps its
// position.
func (m *NodeMap) Set(key string, n *Node) {
	if m.nodes == nil {
		m.nodes = make(map[string]*Node)
	}

	if _, ok := m.nodes[key]; !ok {
		m.keys = append(m.keys, key)
	}

	m.nodes[key] = n
}

// Keys returns the keys in insertion order.
func (m *NodeMap) Keys() []string {
	if m == nil {
		return nil
	}

	return append([]string(nil), m.keys...)
}

// All iterates over entries in insertion order.
func (m *NodeMap) All() iter.Seq2[string, *Node] {
	return func(yield func(string, *Node) bool) {
		if m == nil {
			return
		}

		for _, k := range m.keys {
			if !yield(k, m.nodes[k]) {
				return
			}
		}
	}
}

// Clone returns a deep copy of m.
func (m *NodeMap) Clone() NodeMap {
	var out NodeMap

	for k, n := range m.All() {
		out.Set(k, n.Clone())
	}

	return out
}
