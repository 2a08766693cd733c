// Package checkerstest builds detector contexts for tests.
package checkerstest

import (
	"testing"

	"github.com/mpyw/concmut/internal/checker"
	"github.com/mpyw/concmut/internal/checkers"
	"github.com/mpyw/concmut/internal/javasrc/javasrctest"
	"github.com/mpyw/concmut/internal/registry"
	"github.com/mpyw/concmut/internal/tree"
)

// Context parses src and returns a context over the default APIs.
func Context(t testing.TB, src string) (*checkers.Context, *tree.Unit) {
	t.Helper()

	unit := javasrctest.Parse(t, src)
	reg := registry.New()
	checker.RegisterDefaultAPIs(reg)

	return checkers.NewContext(unit, reg.Freeze()), unit
}
