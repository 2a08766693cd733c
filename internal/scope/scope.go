// Package scope provides enclosing-node navigation over the typed tree.
package scope

import (
	"slices"

	"github.com/mpyw/concmut/internal/tree"
)

// FindEnclosing returns the nearest strict ancestor of n whose kind is one
// of kinds, or nil.
func FindEnclosing(m tree.Model, n *tree.Node, kinds ...tree.Kind) *tree.Node {
	found, _ := FindEnclosingPath(m, n, kinds...)
	return found
}

// FindEnclosingPath is FindEnclosing that also returns the node one level
// further out, i.e. the parent of the found ancestor. For a lambda passed as
// an argument this is the call it is passed to.
func FindEnclosingPath(m tree.Model, n *tree.Node, kinds ...tree.Kind) (found, parent *tree.Node) {
	path := m.EnclosingPath(n)
	for i, anc := range path {
		if !slices.Contains(kinds, m.KindOf(anc)) {
			continue
		}
		if i+1 < len(path) {
			return anc, path[i+1]
		}
		return anc, nil
	}

	return nil, nil
}

// AnyEnclosing checks pred against the whole ancestor chain of n without
// stopping at structural boundaries.
func AnyEnclosing(m tree.Model, n *tree.Node, pred func(*tree.Node) bool) bool {
	for _, anc := range m.EnclosingPath(n) {
		if pred(anc) {
			return true
		}
	}

	return false
}

// IsStaticBlock checks if n is a static initializer block.
func IsStaticBlock(m tree.Model, n *tree.Node) bool {
	return m.KindOf(n) == tree.KindBlock && n.Static
}

// InStaticInitializer checks if n runs during class initialization: it is
// inside a static initializer block at any depth, or its nearest enclosing
// variable declaration is static (a static field initializer).
func InStaticInitializer(m tree.Model, n *tree.Node) bool {
	if AnyEnclosing(m, n, func(anc *tree.Node) bool { return IsStaticBlock(m, anc) }) {
		return true
	}

	v := FindEnclosing(m, n, tree.KindVariable)
	return v != nil && v.Static
}
