package checkers

import (
	"github.com/mpyw/concmut/internal/directives/ignore"
	"github.com/mpyw/concmut/internal/matcher"
	"github.com/mpyw/concmut/internal/registry"
	"github.com/mpyw/concmut/internal/tree"
	"github.com/mpyw/concmut/internal/typeutil"
)

// Context is what a detector sees while inspecting one unit.
type Context struct {
	Model    tree.Model
	State    *matcher.State
	Registry *registry.Registry
}

// NewContext creates a context over m. The registry must be frozen.
func NewContext(m tree.Model, reg *registry.Registry) *Context {
	return &Context{
		Model:    m,
		State:    matcher.NewState(m),
		Registry: reg,
	}
}

// Is checks n against every API registered under role.
func (c *Context) Is(role registry.Role, n *tree.Node) bool {
	return n != nil && c.Registry.Matcher(role).Matches(n, c.State)
}

// Checker is a detector with a fixed message.
type Checker interface {
	Name() ignore.CheckerName
	Message() string
}

// CallChecker inspects method invocations.
type CallChecker interface {
	Checker
	CheckCall(cctx *Context, call *tree.Node) bool
}

// MemberRefChecker inspects method references.
type MemberRefChecker interface {
	Checker
	CheckMemberRef(cctx *Context, ref *tree.Node) bool
}

// LambdaChecker inspects lambda expressions.
type LambdaChecker interface {
	Checker
	CheckLambda(cctx *Context, lambda *tree.Node) bool
}

// collectionQualifier matches the qualifier of list::add style references.
var collectionQualifier = matcher.IsSubtypeOf("java.util.Collection")

// IsUnsafeMutation checks if n is a structural mutation of a collection whose
// receiver type is not inherently safe for concurrent modification.
func IsUnsafeMutation(cctx *Context, n *tree.Node) bool {
	if !cctx.Is(registry.RoleMutation, n) {
		return false
	}

	recv := cctx.Model.ReceiverOf(n)
	if recv == nil {
		return false
	}
	if cctx.Model.KindOf(n) == tree.KindMemberRef && !collectionQualifier.Matches(recv, cctx.State) {
		return false
	}

	return !typeutil.IsInherentlyConcurrentSafe(
		cctx.Model,
		cctx.Model.TypeOf(recv),
		cctx.Registry.ConcurrentNamespaces(),
	)
}

// UnwrapStreamStages follows receivers from n while n is a stream stage call
// and returns the first node that is not.
func UnwrapStreamStages(cctx *Context, n *tree.Node) *tree.Node {
	for n != nil && cctx.Model.KindOf(n) == tree.KindCall && cctx.Is(registry.RoleStreamStage, n) {
		n = cctx.Model.ReceiverOf(n)
	}
	return n
}
