// Package matcher provides composable predicates over typed tree nodes.
package matcher

import (
	"slices"

	"github.com/mpyw/concmut/internal/tree"
	"github.com/mpyw/concmut/internal/typeutil"
)

// State is the read-only context a predicate is evaluated in.
type State struct {
	Model tree.Model
}

// NewState creates a state over the given model.
func NewState(m tree.Model) *State {
	return &State{Model: m}
}

// Matcher is a pure predicate over a node.
type Matcher interface {
	Matches(n *tree.Node, s *State) bool
}

// Func adapts an ordinary function to Matcher.
type Func func(n *tree.Node, s *State) bool

// Matches calls f.
func (f Func) Matches(n *tree.Node, s *State) bool {
	return f(n, s)
}

// AnyOf matches if any of ms matches. An empty AnyOf never matches.
func AnyOf(ms ...Matcher) Matcher {
	return Func(func(n *tree.Node, s *State) bool {
		for _, m := range ms {
			if m.Matches(n, s) {
				return true
			}
		}
		return false
	})
}

// AllOf matches if every one of ms matches. An empty AllOf always matches.
func AllOf(ms ...Matcher) Matcher {
	return Func(func(n *tree.Node, s *State) bool {
		for _, m := range ms {
			if !m.Matches(n, s) {
				return false
			}
		}
		return true
	})
}

// Not negates m.
func Not(m Matcher) Matcher {
	return Func(func(n *tree.Node, s *State) bool {
		return !m.Matches(n, s)
	})
}

// Kind matches nodes of any of the given kinds.
func Kind(kinds ...tree.Kind) Matcher {
	return Func(func(n *tree.Node, s *State) bool {
		return n != nil && slices.Contains(kinds, s.Model.KindOf(n))
	})
}

// IsSubtypeOf matches expressions whose static type descends from qname.
func IsSubtypeOf(qname string) Matcher {
	return Func(func(n *tree.Node, s *State) bool {
		if n == nil {
			return false
		}
		return typeutil.DescendsFrom(s.Model, s.Model.TypeOf(n), qname)
	})
}
