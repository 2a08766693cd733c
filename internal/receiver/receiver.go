// Package receiver decides whether two receiver expressions denote the same
// object reference.
package receiver

import (
	"strings"

	"github.com/mpyw/concmut/internal/tree"
)

// selfQualifier is the redundant qualification stripped before comparing text.
const selfQualifier = "this."

// Of returns the object expression n is invoked against, or nil for
// unqualified and statically qualified invocations.
func Of(m tree.Model, n *tree.Node) *tree.Node {
	return m.ReceiverOf(n)
}

// Same reports whether a and b denote the same reference. Both must resolve
// to the identical symbol, and their canonical source text must match after
// removing a leading "this." from each side. The textual comparison is a
// best-effort filter: it keeps "a.list" and "b.list" apart even though both
// resolve to the same field symbol.
func Same(m tree.Model, a, b *tree.Node) bool {
	if a == nil || b == nil {
		return false
	}

	symA, symB := m.ResolveSymbol(a), m.ResolveSymbol(b)
	if symA == nil || symB == nil || symA != symB {
		return false
	}

	return Canonical(a.Text) == Canonical(b.Text)
}

// Canonical collapses whitespace in text and strips one leading "this.".
func Canonical(text string) string {
	text = strings.Join(strings.Fields(text), "")
	return strings.TrimPrefix(text, selfQualifier)
}
