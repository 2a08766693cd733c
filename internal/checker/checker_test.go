package checker_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpyw/concmut/internal/checker"
	"github.com/mpyw/concmut/internal/checkers/foreachmutation"
	"github.com/mpyw/concmut/internal/checkers/staticparallel"
	"github.com/mpyw/concmut/internal/checkers/unsyncmutation"
	"github.com/mpyw/concmut/internal/finding"
	"github.com/mpyw/concmut/internal/funcspec"
	"github.com/mpyw/concmut/internal/javasrc/javasrctest"
	"github.com/mpyw/concmut/internal/registry"
	"github.com/mpyw/concmut/internal/tree"
)

func newChecker() *checker.Checker {
	reg := registry.New()
	checker.RegisterDefaultAPIs(reg)
	return checker.New(reg, foreachmutation.New(), unsyncmutation.New(), staticparallel.New())
}

func summarize(fs []finding.Finding) []string {
	out := make([]string, len(fs))
	for i, f := range fs {
		out[i] = f.Pos.String() + " " + f.Checker
	}
	return out
}

func TestRun(t *testing.T) {
	unit := javasrctest.Parse(t, `import java.util.*;

class R {
    static List<String> cache = new ArrayList<>();

    static {
        cache.parallelStream().forEach(s -> cache.add(s));
    }

    void run(List<String> list) {
        list.forEach(list::remove);
    }
}
`)

	got := newChecker().Run(unit)
	assert.Equal(t, []string{
		"Test.java:7:40 staticparallel",
		"Test.java:7:45 unsyncmutation",
		"Test.java:11:22 foreachmutation",
	}, summarize(got))
	for _, f := range got {
		assert.Equal(t, finding.SeverityWarning, f.Severity)
		assert.NotNil(t, f.Node)
	}
}

func TestRunIgnoreDirectives(t *testing.T) {
	unit := javasrctest.Parse(t, `import java.util.*;

class R {
    void run(List<String> list) {
        // concmut:ignore foreachmutation
        list.forEach(list::remove);
        list.forEach(s -> list.add(s)); // concmut:ignore
        // concmut:ignore staticparallel
        list.clear();
        // concmut:ignore nosuch
    }
}
`)

	got := newChecker().Run(unit)
	require.Len(t, got, 2)

	assert.Equal(t, checker.UnusedIgnoreChecker, got[0].Checker)
	assert.Equal(t, 8, got[0].Pos.Line)
	assert.Equal(t, "unused concmut:ignore directive for checker(s): staticparallel", got[0].Message)

	assert.Equal(t, 10, got[1].Pos.Line)
	assert.Equal(t, "unused concmut:ignore directive for checker(s): nosuch", got[1].Message)
}

func TestRunDisabledCheckerDirectiveIsUnused(t *testing.T) {
	unit := javasrctest.Parse(t, `import java.util.*;

class R {
    void run(List<String> list) {
        list.forEach(list::remove); // concmut:ignore foreachmutation
    }
}
`)

	reg := registry.New()
	checker.RegisterDefaultAPIs(reg)
	got := checker.New(reg, unsyncmutation.New()).Run(unit)

	require.Len(t, got, 1)
	assert.Equal(t, "unused concmut:ignore directive for checker(s): foreachmutation", got[0].Message)
}

func TestRunGenerated(t *testing.T) {
	unit := javasrctest.Parse(t, `// Code generated by mockgen. DO NOT EDIT.
import java.util.*;

class G {
    void run(List<String> list) {
        list.forEach(list::remove);
    }
}
`)

	assert.True(t, checker.IsGenerated(unit))
	assert.Empty(t, newChecker().Run(unit))
}

func TestIsGeneratedOnlyLeadingComments(t *testing.T) {
	unit := javasrctest.Parse(t, `class G {
    // @generated fragments below are not a file header
    void run() {}
}
`)

	assert.False(t, checker.IsGenerated(unit))
}

func TestRunNilUnit(t *testing.T) {
	assert.Nil(t, newChecker().Run(nil))
	assert.Nil(t, newChecker().Run(&tree.Unit{}))
}

func TestRegisterUserAPIs(t *testing.T) {
	reg := registry.New()
	checker.RegisterDefaultAPIs(reg)
	before := len(reg.APIs(registry.RoleThreadCreation))

	creators, err := funcspec.ParseList("com.example.Pool.run,com.example.Worker.new")
	require.NoError(t, err)
	sources, err := funcspec.ParseList("com.example.Shards.fanOut")
	require.NoError(t, err)
	checker.RegisterUserAPIs(reg, creators, sources)

	threads := reg.APIs(registry.RoleThreadCreation)
	require.Len(t, threads, before+2)
	assert.Equal(t, "Pool.run", threads[before].FullName())
	assert.Equal(t, "new Worker", threads[before+1].FullName())

	parallel := reg.APIs(registry.RoleParallelCollection)
	assert.Equal(t, "Shards.fanOut", parallel[len(parallel)-1].FullName())
}

func TestDefaultMutationNames(t *testing.T) {
	reg := registry.New()
	checker.RegisterDefaultAPIs(reg)
	assert.ElementsMatch(t,
		[]string{"add", "addAll", "clear", "remove", "removeAll", "retainAll"},
		reg.MutationNames())
}
