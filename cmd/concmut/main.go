// Command concmut checks Java sources for collections modified during
// iteration or from parallel code, and for parallel lambdas in static
// initializers.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mpyw/concmut"
	"github.com/mpyw/concmut/internal/config"
	"github.com/mpyw/concmut/internal/report"
)

// Exit codes.
const (
	exitOK       = 0
	exitFindings = 1
	exitError    = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

type options struct {
	configPath    string
	format        string
	baseline      string
	writeBaseline string
	verbose       bool
	noColor       bool
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	code := exitOK
	cmd := newCommand(stdout, stderr, &code)
	cmd.SetArgs(args)

	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "concmut: %v\n", err)
		return exitError
	}
	return code
}

func newCommand(stdout, stderr io.Writer, code *int) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "concmut [flags] [paths...]",
		Short: concmut.Analyzer.Doc,
		Long: `concmut reports three concurrency hazards in Java sources:

  foreachmutation  a collection mutated inside its own forEach callback
  unsyncmutation   a non-concurrent collection mutated from a parallel stream or another thread
  staticparallel   a parallel or threaded lambda inside a class static initializer

Paths may be files, directories (searched recursively for .java files) or
.txtar bundles. The current directory is analyzed when no path is given.

Exit status is 0 without findings, 1 with findings and 2 on errors.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := analyze(cmd, opts, args, stdout, stderr)
			if err != nil {
				return err
			}
			if n > 0 {
				*code = exitFindings
			}
			return nil
		},
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	cmd.Flags().AddGoFlagSet(&concmut.Analyzer.Flags)
	cmd.Flags().StringVar(&opts.configPath, "config", "", "configuration file (default "+config.DefaultFile+" if present)")
	cmd.Flags().StringVar(&opts.format, "format", string(report.FormatText), "output format: text or json")
	cmd.Flags().StringVar(&opts.baseline, "baseline", "", "report only findings not recorded in this baseline file")
	cmd.Flags().StringVar(&opts.writeBaseline, "write-baseline", "", "record all findings to this baseline file and exit")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "log progress to stderr")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "disable colored output")

	return cmd
}

// analyze runs the analyzer and returns the number of reported findings.
func analyze(cmd *cobra.Command, opts options, paths []string, stdout, stderr io.Writer) (int, error) {
	ctx := cmd.Context()

	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	concmut.Analyzer.Logger = logger

	if err := applyConfig(ctx, cmd, opts.configPath, logger); err != nil {
		return 0, err
	}

	printer, err := report.NewPrinter(stdout, report.Format(opts.format), colored(opts, stdout))
	if err != nil {
		return 0, err
	}

	if len(paths) == 0 {
		paths = []string{"."}
	}

	findings, err := concmut.Analyzer.RunPaths(ctx, paths...)
	if err != nil {
		return 0, err
	}

	if opts.writeBaseline != "" {
		b, err := report.NewBaseline(findings)
		if err != nil {
			return 0, err
		}
		if err := b.Write(ctx, opts.writeBaseline); err != nil {
			return 0, err
		}
		logger.Info("baseline written",
			slog.String("file", opts.writeBaseline),
			slog.Int("findings", len(findings)))
		return 0, nil
	}

	if opts.baseline != "" {
		b, err := report.ReadBaseline(ctx, opts.baseline)
		if err != nil {
			return 0, err
		}
		before := len(findings)
		if findings, err = b.Filter(findings); err != nil {
			return 0, err
		}
		logger.Debug("baseline applied",
			slog.String("file", opts.baseline),
			slog.Int("suppressed", before-len(findings)))
	}

	if err := printer.Print(findings); err != nil {
		return 0, err
	}
	return len(findings), nil
}

// applyConfig loads the configuration file and applies it to every analyzer
// flag that was not set on the command line.
func applyConfig(ctx context.Context, cmd *cobra.Command, path string, logger *slog.Logger) error {
	if path == "" {
		if !config.Exists(ctx, config.DefaultFile) {
			return nil
		}
		path = config.DefaultFile
	}

	cfg, err := config.Load(ctx, path)
	if err != nil {
		return err
	}
	logger.Debug("config loaded", slog.String("file", path))

	return cfg.Apply(&concmut.Analyzer.Flags, func(name string) bool {
		return cmd.Flags().Changed(name)
	})
}

func colored(opts options, w io.Writer) bool {
	if opts.noColor || color.NoColor {
		return false
	}
	f, ok := w.(*os.File)
	return ok && f == os.Stdout
}
