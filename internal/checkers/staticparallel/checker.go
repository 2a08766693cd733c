// Package staticparallel detects lambdas that run on other threads while the
// enclosing class is still being initialized.
//
// The initializing thread holds the class initialization lock. A lambda body
// is compiled into a static method of that class, so a worker thread calling
// it blocks on the same lock while the initializer waits for the worker.
package staticparallel

import (
	"github.com/mpyw/concmut/internal/checkers"
	"github.com/mpyw/concmut/internal/directives/ignore"
	"github.com/mpyw/concmut/internal/registry"
	"github.com/mpyw/concmut/internal/scope"
	"github.com/mpyw/concmut/internal/tree"
)

const message = "lambda in a class static initializer runs in parallel and may deadlock on class initialization"

// Checker reports parallel lambdas in static initializers.
type Checker struct{}

// New creates a new staticparallel checker.
func New() *Checker {
	return &Checker{}
}

// Name returns the checker name for ignore directive matching.
func (*Checker) Name() ignore.CheckerName {
	return ignore.StaticParallel
}

// Message returns the fixed finding message.
func (*Checker) Message() string {
	return message
}

// CheckLambda flags a lambda in a static block or static field initializer
// whose enclosing call chain goes parallel or spawns a thread.
func (*Checker) CheckLambda(cctx *checkers.Context, lambda *tree.Node) bool {
	if !scope.InStaticInitializer(cctx.Model, lambda) {
		return false
	}

	for n := scope.FindEnclosing(cctx.Model, lambda, tree.KindCall); cctx.Model.KindOf(n) == tree.KindCall; n = cctx.Model.ReceiverOf(n) {
		if cctx.Is(registry.RoleParallelCollection, n) ||
			cctx.Is(registry.RoleParallelStage, n) ||
			cctx.Is(registry.RoleThreadCreation, n) {
			return true
		}
	}

	ctor := scope.FindEnclosing(cctx.Model, lambda, tree.KindNew)
	return cctx.Is(registry.RoleThreadCreation, ctor)
}
