package matcher_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mpyw/concmut/internal/javasrc/javasrctest"
	"github.com/mpyw/concmut/internal/matcher"
	"github.com/mpyw/concmut/internal/tree"
)

const source = `
import java.util.*;
import java.util.concurrent.*;
import java.awt.EventQueue;

class M {
    static List<String> list = new ArrayList<>();
    ExecutorService executor;

    void run() {
        list.add("a");
        EventQueue.invokeLater(() -> list.clear());
        executor.submit(() -> list.remove("a"));
        Thread t = new Thread(() -> list.size());
        helper();
    }

    void helper() {}
}
`

func TestMethodMatchers(t *testing.T) {
	unit := javasrctest.Parse(t, source)
	s := matcher.NewState(unit)

	add := javasrctest.Find(t, unit, tree.KindCall, `list.add("a")`)
	remove := javasrctest.Find(t, unit, tree.KindCall, `list.remove("a")`)
	invoke := javasrctest.Find(t, unit, tree.KindCall, "EventQueue.invokeLater(() -> list.clear())")
	submit := javasrctest.Find(t, unit, tree.KindCall, `executor.submit(() -> list.remove("a"))`)
	thread := javasrctest.Find(t, unit, tree.KindNew, "new Thread(() -> list.size())")
	helper := javasrctest.Find(t, unit, tree.KindCall, "helper()")

	mutation := matcher.InstanceMethod().OnDescendantOf("java.util.Collection").NamedAnyOf("add", "clear")
	submitM := matcher.InstanceMethod().OnDescendantOf("java.util.concurrent.ExecutorService").Named("submit")
	staticM := matcher.StaticMethod().OnClass("java.awt.EventQueue").NamedAnyOf("invokeLater", "invokeAndWait")
	ctor := matcher.Constructor().ForClass("java.lang.Thread")

	tests := []struct {
		name string
		m    matcher.Matcher
		n    *tree.Node
		want bool
	}{
		{"instance add", mutation, add, true},
		{"instance wrong name", mutation, remove, false},
		{"instance on static call", mutation, invoke, false},
		{"instance without receiver", matcher.InstanceMethod(), helper, false},
		{"submit", submitM, submit, true},
		{"static invokeLater", staticM, invoke, true},
		{"static on instance call", staticM, add, false},
		{"constructor", ctor, thread, true},
		{"constructor wrong class", matcher.Constructor().ForClass("java.util.ArrayList"), thread, false},
		{"nil node", mutation, nil, false},
		{"any of", matcher.AnyOf(staticM, ctor), thread, true},
		{"empty any of", matcher.AnyOf(), add, false},
		{"all of", matcher.AllOf(mutation, matcher.Kind(tree.KindCall)), add, true},
		{"empty all of", matcher.AllOf(), add, true},
		{"not", matcher.Not(ctor), add, true},
		{"kind", matcher.Kind(tree.KindLambda, tree.KindNew), thread, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.m.Matches(tt.n, s))
		})
	}
}

func TestBuilderDoesNotShareState(t *testing.T) {
	unit := javasrctest.Parse(t, source)
	s := matcher.NewState(unit)
	add := javasrctest.Find(t, unit, tree.KindCall, `list.add("a")`)

	base := matcher.InstanceMethod().OnDescendantOf("java.util.Collection")
	onlyClear := base.Named("clear")
	onlyAdd := base.Named("add")

	assert.False(t, onlyClear.Matches(add, s))
	assert.True(t, onlyAdd.Matches(add, s))
	assert.True(t, base.Matches(add, s))
}

func TestIsSubtypeOf(t *testing.T) {
	unit := javasrctest.Parse(t, source)
	s := matcher.NewState(unit)
	list := javasrctest.Find(t, unit, tree.KindIdent, "list")

	assert.True(t, matcher.IsSubtypeOf("java.util.Collection").Matches(list, s))
	assert.True(t, matcher.IsSubtypeOf("java.lang.Iterable").Matches(list, s))
	assert.False(t, matcher.IsSubtypeOf("java.util.Map").Matches(list, s))
	assert.False(t, matcher.IsSubtypeOf("java.util.Collection").Matches(nil, s))
}
