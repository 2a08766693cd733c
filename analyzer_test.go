package concmut_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpyw/concmut"
	"github.com/mpyw/concmut/internal/analysistest"
	"github.com/mpyw/concmut/internal/funcspec"
)

// setFlags sets analyzer flags for the duration of the test.
func setFlags(t *testing.T, values map[string]string) {
	t.Helper()

	for name, value := range values {
		f := concmut.Analyzer.Flags.Lookup(name)
		require.NotNil(t, f, "flag %s", name)

		old := f.Value.String()
		if err := concmut.Analyzer.Flags.Set(name, value); err != nil {
			t.Fatal(err)
		}
		t.Cleanup(func() {
			_ = concmut.Analyzer.Flags.Set(name, old)
		})
	}
}

func only(checker string) map[string]string {
	flags := map[string]string{
		"foreachmutation": "false",
		"unsyncmutation":  "false",
		"staticparallel":  "false",
	}
	flags[checker] = "true"
	return flags
}

func TestForEachMutation(t *testing.T) {
	setFlags(t, only("foreachmutation"))
	testdata := analysistest.TestData()
	analysistest.Run(t, testdata, concmut.Analyzer, "foreachmutation")
}

func TestUnsyncMutation(t *testing.T) {
	setFlags(t, only("unsyncmutation"))
	testdata := analysistest.TestData()
	analysistest.Run(t, testdata, concmut.Analyzer, "unsyncmutation")
}

func TestStaticParallel(t *testing.T) {
	setFlags(t, only("staticparallel"))
	testdata := analysistest.TestData()
	analysistest.Run(t, testdata, concmut.Analyzer, "staticparallel")
}

func TestIgnoreDirectives(t *testing.T) {
	testdata := analysistest.TestData()
	analysistest.Run(t, testdata, concmut.Analyzer, "ignore")
}

func TestGeneratedSkipped(t *testing.T) {
	testdata := analysistest.TestData()
	analysistest.Run(t, testdata, concmut.Analyzer, "generated")
}

func TestThreadCreators(t *testing.T) {
	setFlags(t, map[string]string{
		"thread-creators": "com.example.pool.WorkerPool.run,com.example.pool.Worker.new",
	})
	testdata := analysistest.TestData()
	analysistest.Run(t, testdata, concmut.Analyzer, "threadcreators")
}

func TestParallelSources(t *testing.T) {
	setFlags(t, map[string]string{
		"parallel-sources": "com.example.shards.Shards.fanOut",
	})
	testdata := analysistest.TestData()
	analysistest.Run(t, testdata, concmut.Analyzer, "parallelsources")
}

func TestConcurrentNamespaces(t *testing.T) {
	setFlags(t, map[string]string{
		"concurrent-namespaces": "java.util.concurrent,com.example.safe",
	})
	testdata := analysistest.TestData()
	analysistest.Run(t, testdata, concmut.Analyzer, "concurrentnamespaces")
}

func TestInvalidThreadCreators(t *testing.T) {
	setFlags(t, map[string]string{"thread-creators": "submit"})

	_, err := concmut.Analyzer.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, funcspec.ErrInvalidSpec)
	assert.Contains(t, err.Error(), "-thread-creators")
}

func TestRunIsRepeatable(t *testing.T) {
	ctx := context.Background()
	units, err := concmut.Analyzer.Load(ctx, filepath.Join(analysistest.TestData(), "src", "unsyncmutation"))
	require.NoError(t, err)

	first, err := concmut.Analyzer.Run(ctx, units...)
	require.NoError(t, err)
	second, err := concmut.Analyzer.Run(ctx, units...)
	require.NoError(t, err)

	require.NotEmpty(t, first)
	assert.Equal(t, first, second)
}

func TestRunSingleWorker(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(analysistest.TestData(), "src", "staticparallel")

	parallel, err := concmut.Analyzer.RunPaths(ctx, dir)
	require.NoError(t, err)

	setFlags(t, map[string]string{"j": "1"})
	serial, err := concmut.Analyzer.RunPaths(ctx, dir)
	require.NoError(t, err)

	assert.Equal(t, parallel, serial)
}

func TestRunCanceled(t *testing.T) {
	units, err := concmut.Analyzer.Load(context.Background(), filepath.Join(analysistest.TestData(), "src", "foreachmutation"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = concmut.Analyzer.Run(ctx, units...)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunPathsTxtar(t *testing.T) {
	archive := filepath.Join(t.TempDir(), "bundle.txtar")
	require.NoError(t, os.WriteFile(archive, []byte(`-- a/Loop.java --
package a;

import java.util.ArrayList;

class Loop {
  void run(ArrayList<String> list) {
    list.forEach(s -> list.add(s));
  }
}
`), 0o644))

	findings, err := concmut.Analyzer.RunPaths(context.Background(), archive)
	require.NoError(t, err)
	require.Len(t, findings, 1)
	assert.Equal(t, "foreachmutation", findings[0].Checker)
	assert.Equal(t, archive+"/a/Loop.java", findings[0].Pos.File)
	assert.Equal(t, 7, findings[0].Pos.Line)
}
