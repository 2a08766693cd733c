// Package checker provides the unified runner that dispatches tree nodes to
// the enabled detectors.
package checker

import (
	"strings"

	"github.com/mpyw/concmut/internal/checkers"
	"github.com/mpyw/concmut/internal/directives/ignore"
	"github.com/mpyw/concmut/internal/finding"
	"github.com/mpyw/concmut/internal/registry"
	"github.com/mpyw/concmut/internal/tree"
)

// UnusedIgnoreChecker is the checker name findings about unused ignore
// directives are reported under.
const UnusedIgnoreChecker = "concmut"

// Checker is the unified runner. It is read-only after New and may analyze
// units from several goroutines at once.
type Checker struct {
	registry *registry.Registry
	calls    []checkers.CallChecker
	refs     []checkers.MemberRefChecker
	lambdas  []checkers.LambdaChecker
	enabled  ignore.EnabledCheckers
}

// New creates a runner over reg for the given detectors. The registry is
// frozen before it is returned.
func New(reg *registry.Registry, cs ...checkers.Checker) *Checker {
	c := &Checker{
		registry: reg.Freeze(),
		enabled:  make(ignore.EnabledCheckers),
	}

	for _, ch := range cs {
		c.enabled[ch.Name()] = true
		if cc, ok := ch.(checkers.CallChecker); ok {
			c.calls = append(c.calls, cc)
		}
		if rc, ok := ch.(checkers.MemberRefChecker); ok {
			c.refs = append(c.refs, rc)
		}
		if lc, ok := ch.(checkers.LambdaChecker); ok {
			c.lambdas = append(c.lambdas, lc)
		}
	}

	return c
}

// Run analyzes one unit and returns its findings in report order.
// Generated units yield nothing.
func (c *Checker) Run(unit *tree.Unit) []finding.Finding {
	if unit == nil || unit.Root == nil || IsGenerated(unit) {
		return nil
	}

	ignoreMap := ignore.Build(unit.Comments)
	cctx := checkers.NewContext(unit, c.registry)

	var findings []finding.Finding
	report := func(ch checkers.Checker, n *tree.Node) {
		if ignoreMap.ShouldIgnore(n.Pos.Line, ch.Name()) {
			return
		}
		findings = append(findings, finding.New(string(ch.Name()), ch.Message(), n))
	}

	tree.Walk(unit.Root, func(n *tree.Node, _ []*tree.Node) bool {
		switch n.Kind {
		case tree.KindCall:
			for _, ch := range c.calls {
				if ch.CheckCall(cctx, n) {
					report(ch, n)
				}
			}
		case tree.KindMemberRef:
			for _, ch := range c.refs {
				if ch.CheckMemberRef(cctx, n) {
					report(ch, n)
				}
			}
		case tree.KindLambda:
			for _, ch := range c.lambdas {
				if ch.CheckLambda(cctx, n) {
					report(ch, n)
				}
			}
		}
		return true
	})

	findings = append(findings, c.unusedIgnores(ignoreMap)...)
	finding.Sort(findings)

	return findings
}

func (c *Checker) unusedIgnores(ignoreMap ignore.Map) []finding.Finding {
	var out []finding.Finding

	for _, unused := range ignoreMap.GetUnusedIgnores(c.enabled) {
		msg := "unused concmut:ignore directive"
		if len(unused.Checkers) > 0 {
			names := make([]string, len(unused.Checkers))
			for i, name := range unused.Checkers {
				names[i] = string(name)
			}
			msg += " for checker(s): " + strings.Join(names, ", ")
		}

		f := finding.New(UnusedIgnoreChecker, msg, nil)
		f.Pos = unused.Pos
		out = append(out, f)
	}

	return out
}

// generatedMarkers identify machine-written sources in a leading comment.
var generatedMarkers = []string{"Code generated", "DO NOT EDIT", "@generated"}

// IsGenerated checks if a comment before the first declaration marks the unit
// as generated.
func IsGenerated(unit *tree.Unit) bool {
	first := 0
	if children := unit.Root.Children(); len(children) > 0 {
		first = children[0].Pos.Offset
	}

	for _, cm := range unit.Comments {
		if len(unit.Root.Children()) > 0 && cm.Pos.Offset >= first {
			break
		}
		for _, marker := range generatedMarkers {
			if strings.Contains(cm.Text, marker) {
				return true
			}
		}
	}

	return false
}
