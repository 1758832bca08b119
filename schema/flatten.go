package schema

import (
	"sort"
	"strings"
)

// itemSuffix marks the descent into an array's item node.
const itemSuffix = "[]"

// FlatIndex maps every path in one schema snapshot to its node.
// It is derived on demand via [Node.Flatten] and never persisted; paths are
// unique within one snapshot.
type FlatIndex map[string]*Node

// Paths returns every path in the index, sorted.
func (idx FlatIndex) Paths() []string {
	paths := make([]string, 0, len(idx))
	for p := range idx {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Flatten walks the tree and returns a path-indexed view of every node.
// The root is addressed by the empty path; object fields are visited under
// "parent.key" and array items under "parent[]".
func (n *Node) Flatten() FlatIndex {
	idx := make(FlatIndex)
	n.flattenInto("", idx)
	return idx
}

func (n *Node) flattenInto(path string, idx FlatIndex) {
	if n == nil {
		return
	}
	idx[path] = n
	switch n.Kind {
	case KindObject:
		for _, name := range n.PropOrder {
			n.Properties[name].flattenInto(JoinPath(path, name), idx)
		}
	case KindArray:
		if n.Items != nil {
			n.Items.flattenInto(path+itemSuffix, idx)
		}
	}
}

// JoinPath appends a field name to a parent path.
func JoinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "." + name
}

// ParentPath returns the path of the node containing the addressed node,
// or "" for top-level paths.
func ParentPath(path string) string {
	if i := strings.LastIndex(path, "."); i >= 0 {
		return path[:i]
	}
	return ""
}

// LeafName returns the final segment of a path.
func LeafName(path string) string {
	if i := strings.LastIndex(path, "."); i >= 0 {
		return path[i+1:]
	}
	return path
}

// IsItemPath reports whether the path addresses an array's item node.
// Item paths follow their parent field through structural changes and are
// never independently added or removed.
func IsItemPath(path string) bool {
	return strings.HasSuffix(path, itemSuffix)
}
