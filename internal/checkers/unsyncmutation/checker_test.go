package unsyncmutation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mpyw/concmut/internal/checkers/checkerstest"
	"github.com/mpyw/concmut/internal/checkers/unsyncmutation"
	"github.com/mpyw/concmut/internal/directives/ignore"
	"github.com/mpyw/concmut/internal/javasrc/javasrctest"
	"github.com/mpyw/concmut/internal/tree"
)

const source = `
import java.awt.EventQueue;
import java.util.*;
import java.util.concurrent.*;

class U {
    void run(List<String> in, ExecutorService pool) throws Exception {
        List<String> out = new ArrayList<>();
        CopyOnWriteArrayList<String> safe = new CopyOnWriteArrayList<>();

        in.parallelStream().forEach(s -> out.add(s));
        in.parallelStream().map(String::trim).filter(s -> !s.isEmpty()).forEach(s -> out.remove(s));
        in.stream().forEach(s -> out.clear());
        in.forEach(s -> out.addAll(in));
        in.parallelStream().forEach(s -> safe.add(s));
        in.parallelStream().forEach(s -> { synchronized (out) { out.retainAll(in); } });
        pool.submit(() -> out.removeAll(in));
        EventQueue.invokeLater(() -> out.add("ui"));
        new Thread(() -> out.add("thread")).start();
        Runnable r = () -> out.add("stored");

        in.parallelStream().forEach(out::add);
        in.parallelStream().sorted().forEach(out::remove);
        in.stream().forEach(out::addAll);
        in.parallelStream().forEach(safe::add);
    }
}
`

func TestCheckCall(t *testing.T) {
	cctx, unit := checkerstest.Context(t, source)
	c := unsyncmutation.New()

	tests := []struct {
		call string
		want bool
	}{
		{"out.add(s)", true},
		{"out.remove(s)", true},
		{"out.clear()", false},
		{"out.addAll(in)", false},
		{"safe.add(s)", false},
		{"out.retainAll(in)", false},
		{"out.removeAll(in)", true},
		{`out.add("ui")`, true},
		{`out.add("thread")`, true},
		{`out.add("stored")`, false},
	}

	for _, tt := range tests {
		t.Run(tt.call, func(t *testing.T) {
			n := javasrctest.Find(t, unit, tree.KindCall, tt.call)
			assert.Equal(t, tt.want, c.CheckCall(cctx, n))
		})
	}
}

func TestCheckMemberRef(t *testing.T) {
	cctx, unit := checkerstest.Context(t, source)
	c := unsyncmutation.New()

	tests := []struct {
		ref  string
		want bool
	}{
		{"out::add", true},
		{"out::remove", true},
		{"out::addAll", false},
		{"safe::add", false},
		{"String::trim", false},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			n := javasrctest.Find(t, unit, tree.KindMemberRef, tt.ref)
			assert.Equal(t, tt.want, c.CheckMemberRef(cctx, n))
		})
	}
}

func TestIdentity(t *testing.T) {
	c := unsyncmutation.New()
	assert.Equal(t, ignore.UnsyncMutation, c.Name())
	assert.Equal(t, "modifying a non-concurrent collection in parallel may lead to undefined behavior", c.Message())
}
