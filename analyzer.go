// Package concmut provides an analyzer for detecting unsafe collection
// mutation and parallel work in Java sources.
package concmut

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/mpyw/concmut/internal/checker"
	"github.com/mpyw/concmut/internal/checkers"
	"github.com/mpyw/concmut/internal/checkers/foreachmutation"
	"github.com/mpyw/concmut/internal/checkers/staticparallel"
	"github.com/mpyw/concmut/internal/checkers/unsyncmutation"
	"github.com/mpyw/concmut/internal/finding"
	"github.com/mpyw/concmut/internal/funcspec"
	"github.com/mpyw/concmut/internal/load"
	"github.com/mpyw/concmut/internal/registry"
	"github.com/mpyw/concmut/internal/tree"
)

// Flags for the analyzer.
var (
	threadCreators       string
	parallelSources      string
	concurrentNamespaces string
	concurrency          int

	// Checker enable/disable flags (all enabled by default).
	enableForEachMutation bool
	enableUnsyncMutation  bool
	enableStaticParallel  bool
)

func init() {
	Analyzer.Flags.StringVar(&threadCreators, "thread-creators", "",
		"comma-separated list of methods that run their argument on another thread (e.g., com.example.Pool.submit or com.example.Worker.new)")
	Analyzer.Flags.StringVar(&parallelSources, "parallel-sources", "",
		"comma-separated list of methods that return a parallel stream (e.g., com.example.Shards.fanOut)")
	Analyzer.Flags.StringVar(&concurrentNamespaces, "concurrent-namespaces", "",
		"comma-separated list of namespaces whose collections are safe for concurrent modification (default java.util.concurrent)")
	Analyzer.Flags.IntVar(&concurrency, "j", runtime.GOMAXPROCS(0), "number of units analyzed in parallel")

	// Checker flags (default: all enabled)
	Analyzer.Flags.BoolVar(&enableForEachMutation, "foreachmutation", true, "enable foreachmutation checker")
	Analyzer.Flags.BoolVar(&enableUnsyncMutation, "unsyncmutation", true, "enable unsyncmutation checker")
	Analyzer.Flags.BoolVar(&enableStaticParallel, "staticparallel", true, "enable staticparallel checker")
}

// Linter runs the enabled checkers over resolved units. Its behavior is
// controlled through Flags.
type Linter struct {
	Name  string
	Doc   string
	Flags flag.FlagSet

	// Logger receives run diagnostics. Nil means slog.Default().
	Logger *slog.Logger
}

// Analyzer is the main analyzer for concmut.
var Analyzer = &Linter{
	Name:  "concmut",
	Doc:   "checks for collections modified during iteration or from parallel code, and for parallel lambdas in static initializers",
	Flags: flag.FlagSet{},
}

func (l *Linter) logger() *slog.Logger {
	if l.Logger != nil {
		return l.Logger
	}
	return slog.Default()
}

// Load reads and parses the Java sources under paths.
func (l *Linter) Load(ctx context.Context, paths ...string) ([]*tree.Unit, error) {
	return load.New(l.logger(), concurrency).Load(ctx, paths...)
}

// Run analyzes units concurrently and returns every finding in report order.
func (l *Linter) Run(ctx context.Context, units ...*tree.Unit) ([]finding.Finding, error) {
	c, err := newChecker()
	if err != nil {
		return nil, err
	}

	results := make([][]finding.Finding, len(units))

	g, ctx := errgroup.WithContext(ctx)
	if concurrency > 0 {
		g.SetLimit(concurrency)
	}
	for i, unit := range units {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if unit == nil {
				return nil
			}
			if checker.IsGenerated(unit) {
				l.logger().Debug("skipping generated unit", slog.String("file", unit.File))
				return nil
			}
			results[i] = c.Run(unit)
			l.logger().Debug("analyzed unit",
				slog.String("file", unit.File),
				slog.Int("findings", len(results[i])))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []finding.Finding
	for _, fs := range results {
		all = append(all, fs...)
	}
	finding.Sort(all)

	return all, nil
}

// RunPaths loads the sources under paths and analyzes them.
func (l *Linter) RunPaths(ctx context.Context, paths ...string) ([]finding.Finding, error) {
	units, err := l.Load(ctx, paths...)
	if err != nil {
		return nil, err
	}
	return l.Run(ctx, units...)
}

// newChecker builds the unified runner from the current flag values.
func newChecker() (*checker.Checker, error) {
	creators, err := funcspec.ParseList(threadCreators)
	if err != nil {
		return nil, fmt.Errorf("-thread-creators: %w", err)
	}
	sources, err := funcspec.ParseList(parallelSources)
	if err != nil {
		return nil, fmt.Errorf("-parallel-sources: %w", err)
	}

	// Create registry and register APIs
	reg := registry.New()
	checker.RegisterDefaultAPIs(reg)
	checker.RegisterUserAPIs(reg, creators, sources)
	reg.SetConcurrentNamespaces(splitList(concurrentNamespaces))

	return checker.New(reg, enabledCheckers()...), nil
}

func enabledCheckers() []checkers.Checker {
	var cs []checkers.Checker

	if enableForEachMutation {
		cs = append(cs, foreachmutation.New())
	}

	if enableUnsyncMutation {
		cs = append(cs, unsyncmutation.New())
	}

	if enableStaticParallel {
		cs = append(cs, staticparallel.New())
	}

	return cs
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
