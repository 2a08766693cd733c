// Package unsyncmutation detects non-concurrent collections mutated from
// parallel streams or callbacks run on another thread.
package unsyncmutation

import (
	"github.com/mpyw/concmut/internal/checkers"
	"github.com/mpyw/concmut/internal/directives/ignore"
	"github.com/mpyw/concmut/internal/registry"
	"github.com/mpyw/concmut/internal/scope"
	"github.com/mpyw/concmut/internal/tree"
)

const message = "modifying a non-concurrent collection in parallel may lead to undefined behavior"

// Checker reports unsynchronized mutations in concurrent contexts.
type Checker struct{}

// New creates a new unsyncmutation checker.
func New() *Checker {
	return &Checker{}
}

// Name returns the checker name for ignore directive matching.
func (*Checker) Name() ignore.CheckerName {
	return ignore.UnsyncMutation
}

// Message returns the fixed finding message.
func (*Checker) Message() string {
	return message
}

// CheckCall flags out.add(x) inside a lambda that runs on a parallel stream
// or is handed to a thread-creation API.
//
//	new Thread(() -> out.add(x))
//	executor.submit(() -> out.add(x))
//	items.parallelStream().map(f).forEach(x -> out.add(x))
func (*Checker) CheckCall(cctx *checkers.Context, call *tree.Node) bool {
	if !checkers.IsUnsafeMutation(cctx, call) || synchronized(cctx, call) {
		return false
	}

	lambda, parent := scope.FindEnclosingPath(cctx.Model, call, tree.KindLambda)
	if lambda == nil || parent == nil || !cctx.Model.KindOf(parent).IsExpression() {
		return false
	}

	if ctor := scope.FindEnclosing(cctx.Model, call, tree.KindNew); cctx.Is(registry.RoleThreadCreation, ctor) {
		return true
	}

	expr := parent
	for expr != nil && cctx.Model.KindOf(expr) == tree.KindCall && cctx.Is(registry.RoleStreamStage, expr) {
		if cctx.Is(registry.RoleThreadCreation, expr) {
			return true
		}
		expr = cctx.Model.ReceiverOf(expr)
	}

	return cctx.Is(registry.RoleThreadCreation, expr) || cctx.Is(registry.RoleParallelCollection, expr)
}

// CheckMemberRef flags out::add passed to a stage of a parallel stream.
func (*Checker) CheckMemberRef(cctx *checkers.Context, ref *tree.Node) bool {
	if !checkers.IsUnsafeMutation(cctx, ref) || synchronized(cctx, ref) {
		return false
	}

	call := scope.FindEnclosing(cctx.Model, ref, tree.KindCall)
	if call == nil {
		return false
	}

	return cctx.Is(registry.RoleParallelCollection, checkers.UnwrapStreamStages(cctx, call))
}

func synchronized(cctx *checkers.Context, n *tree.Node) bool {
	return scope.FindEnclosing(cctx.Model, n, tree.KindSynchronized) != nil
}
