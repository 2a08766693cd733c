package load

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/afs/url"
	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/txtar"

	"github.com/mpyw/concmut/internal/javasrc"
	"github.com/mpyw/concmut/internal/tree"
)

// ErrNoSources is returned when the inputs contain no Java sources.
var ErrNoSources = errors.New("no Java sources found")

const (
	javaExt  = ".java"
	txtarExt = ".txtar"
)

// Source is one Java compilation unit before parsing.
type Source struct {
	// Name is the path findings are reported under.
	Name string
	Data []byte
}

// Loader reads and parses sources.
type Loader struct {
	fs          afs.Service
	logger      *slog.Logger
	concurrency int
}

// New creates a loader. A nil logger discards output; concurrency below one
// means unlimited.
func New(logger *slog.Logger, concurrency int) *Loader {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Loader{
		fs:          afs.New(),
		logger:      logger,
		concurrency: concurrency,
	}
}

// Load collects the sources under paths and parses them.
// Units are returned sorted by file name.
func (l *Loader) Load(ctx context.Context, paths ...string) ([]*tree.Unit, error) {
	sources, err := l.Sources(ctx, paths...)
	if err != nil {
		return nil, err
	}
	return l.Parse(ctx, sources...)
}

// Parse parses sources concurrently.
func (l *Loader) Parse(ctx context.Context, sources ...Source) ([]*tree.Unit, error) {
	units := make([]*tree.Unit, len(sources))

	g, ctx := errgroup.WithContext(ctx)
	if l.concurrency > 0 {
		g.SetLimit(l.concurrency)
	}
	for i, src := range sources {
		g.Go(func() error {
			unit, err := javasrc.Parse(ctx, src.Name, src.Data)
			if err != nil {
				return fmt.Errorf("parse %s: %w", src.Name, err)
			}
			if unit.SyntaxErrors > 0 {
				l.logger.Warn("source has syntax errors; analyzing recovered tree",
					slog.String("file", src.Name),
					slog.Int("errors", unit.SyntaxErrors))
			}
			units[i] = unit
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(units, func(i, j int) bool { return units[i].File < units[j].File })
	return units, nil
}

// Sources collects the Java sources named by paths. Duplicate files are read
// once.
func (l *Loader) Sources(ctx context.Context, paths ...string) ([]Source, error) {
	var out []Source
	seen := make(map[string]bool)
	add := func(srcs ...Source) {
		for _, s := range srcs {
			if seen[s.Name] {
				continue
			}
			seen[s.Name] = true
			out = append(out, s)
		}
	}

	for _, p := range paths {
		switch {
		case strings.HasSuffix(p, txtarExt):
			srcs, err := l.archive(ctx, p)
			if err != nil {
				return nil, err
			}
			add(srcs...)
		case strings.HasSuffix(p, javaExt):
			data, err := l.fs.DownloadWithURL(ctx, Location(p))
			if err != nil {
				return nil, fmt.Errorf("read %s: %w", p, err)
			}
			add(Source{Name: p, Data: data})
		default:
			srcs, err := l.dir(ctx, p)
			if err != nil {
				return nil, err
			}
			add(srcs...)
		}
	}

	if len(out) == 0 {
		return nil, ErrNoSources
	}
	return out, nil
}

func (l *Loader) dir(ctx context.Context, root string) ([]Source, error) {
	type entry struct{ name, URL string }
	var entries []entry

	var visitor storage.OnVisit = func(ctx context.Context, baseURL, parent string, info os.FileInfo, reader io.Reader) (bool, error) {
		if info.IsDir() {
			return !strings.HasPrefix(info.Name(), "."), nil
		}
		if !strings.HasSuffix(info.Name(), javaExt) {
			return true, nil
		}
		dirURL := baseURL
		if parent != "" {
			dirURL = url.Join(baseURL, parent)
		}
		entries = append(entries, entry{
			name: filepath.Join(root, parent, info.Name()),
			URL:  url.Join(dirURL, info.Name()),
		})
		return true, nil
	}
	if err := l.fs.Walk(ctx, Location(root), visitor); err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	sources := make([]Source, len(entries))
	g, ctx := errgroup.WithContext(ctx)
	if l.concurrency > 0 {
		g.SetLimit(l.concurrency)
	}
	for i, e := range entries {
		g.Go(func() error {
			data, err := l.fs.DownloadWithURL(ctx, e.URL)
			if err != nil {
				return fmt.Errorf("read %s: %w", e.name, err)
			}
			sources[i] = Source{Name: e.name, Data: data}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(sources, func(i, j int) bool { return sources[i].Name < sources[j].Name })
	return sources, nil
}

func (l *Loader) archive(ctx context.Context, p string) ([]Source, error) {
	data, err := l.fs.DownloadWithURL(ctx, Location(p))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", p, err)
	}

	var out []Source
	for _, f := range txtar.Parse(data).Files {
		if !strings.HasSuffix(f.Name, javaExt) {
			continue
		}
		out = append(out, Source{Name: path.Join(p, f.Name), Data: f.Data})
	}
	return out, nil
}

// Location turns a local path into an absolute one; URLs pass through.
func Location(p string) string {
	if strings.Contains(p, "://") {
		return p
	}
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
