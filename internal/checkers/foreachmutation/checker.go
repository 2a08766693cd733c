// Package foreachmutation detects collections mutated from inside their own
// forEach callback.
package foreachmutation

import (
	"github.com/mpyw/concmut/internal/checkers"
	"github.com/mpyw/concmut/internal/directives/ignore"
	"github.com/mpyw/concmut/internal/receiver"
	"github.com/mpyw/concmut/internal/registry"
	"github.com/mpyw/concmut/internal/scope"
	"github.com/mpyw/concmut/internal/tree"
)

const message = "modifying a collection while iterating over it in forEach may throw ConcurrentModificationException or lead to undefined behavior"

// Checker reports mutations of the collection being traversed.
type Checker struct{}

// New creates a new foreachmutation checker.
func New() *Checker {
	return &Checker{}
}

// Name returns the checker name for ignore directive matching.
func (*Checker) Name() ignore.CheckerName {
	return ignore.ForEachMutation
}

// Message returns the fixed finding message.
func (*Checker) Message() string {
	return message
}

// CheckCall flags list.add(x) inside a lambda passed to list.forEach.
func (*Checker) CheckCall(cctx *checkers.Context, call *tree.Node) bool {
	if !checkers.IsUnsafeMutation(cctx, call) {
		return false
	}

	lambda, forEach := scope.FindEnclosingPath(cctx.Model, call, tree.KindLambda)
	if lambda == nil || !cctx.Is(registry.RoleTraversal, forEach) {
		return false
	}

	return receiver.Same(cctx.Model, receiver.Of(cctx.Model, call), receiver.Of(cctx.Model, forEach))
}

// CheckMemberRef flags list::add passed directly to list.forEach.
func (*Checker) CheckMemberRef(cctx *checkers.Context, ref *tree.Node) bool {
	if !checkers.IsUnsafeMutation(cctx, ref) {
		return false
	}

	forEach := scope.FindEnclosing(cctx.Model, ref, tree.KindCall)
	if !cctx.Is(registry.RoleTraversal, forEach) {
		return false
	}

	return receiver.Same(cctx.Model, receiver.Of(cctx.Model, ref), receiver.Of(cctx.Model, forEach))
}
