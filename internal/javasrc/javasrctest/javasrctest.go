// Package javasrctest provides helpers for tests that need resolved Java units.
package javasrctest

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mpyw/concmut/internal/javasrc"
	"github.com/mpyw/concmut/internal/tree"
)

// Parse parses src as Test.java and fails the test on syntax errors.
func Parse(t testing.TB, src string) *tree.Unit {
	t.Helper()

	unit, err := javasrc.Parse(context.Background(), "Test.java", []byte(src))
	require.NoError(t, err)
	require.Zero(t, unit.SyntaxErrors, "fixture has syntax errors")

	return unit
}

// FindAll returns every node of kind in source order.
func FindAll(unit *tree.Unit, kind tree.Kind) []*tree.Node {
	var out []*tree.Node
	tree.Walk(unit.Root, func(n *tree.Node, _ []*tree.Node) bool {
		if n.Kind == kind {
			out = append(out, n)
		}
		return true
	})
	return out
}

// Find returns the first node of kind whose source text equals text,
// ignoring whitespace.
func Find(t testing.TB, unit *tree.Unit, kind tree.Kind, text string) *tree.Node {
	t.Helper()

	want := compact(text)
	for _, n := range FindAll(unit, kind) {
		if compact(n.Text) == want {
			return n
		}
	}

	require.Failf(t, "node not found", "%s %q", kind, text)
	return nil
}

func compact(s string) string {
	return strings.Join(strings.Fields(s), "")
}
