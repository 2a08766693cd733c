// Package config loads the optional YAML configuration file.
//
// A configuration file supplies defaults for the analyzer flags:
//
//	checkers:
//	  foreachmutation: true
//	  staticparallel: false
//	thread-creators:
//	  - com.example.Pool.submit
//	parallel-sources:
//	  - com.example.Shards.fanOut
//	concurrent-namespaces:
//	  - com.example.concurrent
//	concurrency: 4
//
// Flags given explicitly on the command line take precedence.
package config

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/viant/afs"
	"gopkg.in/yaml.v3"

	"github.com/mpyw/concmut/internal/directives/ignore"
	"github.com/mpyw/concmut/internal/funcspec"
	"github.com/mpyw/concmut/internal/load"
)

// DefaultFile is looked up in the working directory when no file is given.
const DefaultFile = ".concmut.yml"

// ErrUnknownChecker is returned when the file names a checker that does not
// exist.
var ErrUnknownChecker = errors.New("unknown checker")

// Config mirrors the analyzer flags.
type Config struct {
	Checkers             map[string]bool `yaml:"checkers"`
	ThreadCreators       []string        `yaml:"thread-creators"`
	ParallelSources      []string        `yaml:"parallel-sources"`
	ConcurrentNamespaces []string        `yaml:"concurrent-namespaces"`
	Concurrency          int             `yaml:"concurrency"`
}

// Load reads and validates the file at location.
func Load(ctx context.Context, location string) (*Config, error) {
	data, err := afs.New().DownloadWithURL(ctx, load.Location(location))
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", location, err)
	}

	cfg, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", location, err)
	}
	return cfg, nil
}

// Exists reports whether a file exists at location.
func Exists(ctx context.Context, location string) bool {
	ok, err := afs.New().Exists(ctx, load.Location(location))
	return err == nil && ok
}

// Decode parses a configuration document. Unknown keys are rejected.
func Decode(r io.Reader) (*Config, error) {
	cfg := &Config{}

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks checker names, method specifications and the
// concurrency limit.
func (c *Config) Validate() error {
	known := make(map[string]bool)
	for _, name := range ignore.AllCheckerNames() {
		known[string(name)] = true
	}
	for name := range c.Checkers {
		if !known[name] {
			return fmt.Errorf("%w: %q", ErrUnknownChecker, name)
		}
	}

	for key, specs := range map[string][]string{
		"thread-creators":  c.ThreadCreators,
		"parallel-sources": c.ParallelSources,
	} {
		if _, err := funcspec.ParseList(strings.Join(specs, ",")); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}

	if c.Concurrency < 0 {
		return fmt.Errorf("concurrency must not be negative, got %d", c.Concurrency)
	}
	return nil
}

// Apply sets the flags described by c on fs. Flags for which skip returns
// true are left alone. A nil skip applies everything.
func (c *Config) Apply(fs *flag.FlagSet, skip func(name string) bool) error {
	set := func(name, value string) error {
		if skip != nil && skip(name) {
			return nil
		}
		if err := fs.Set(name, value); err != nil {
			return fmt.Errorf("apply %s: %w", name, err)
		}
		return nil
	}

	for name, enabled := range c.Checkers {
		if err := set(name, strconv.FormatBool(enabled)); err != nil {
			return err
		}
	}

	lists := []struct {
		name   string
		values []string
	}{
		{"thread-creators", c.ThreadCreators},
		{"parallel-sources", c.ParallelSources},
		{"concurrent-namespaces", c.ConcurrentNamespaces},
	}
	for _, l := range lists {
		if len(l.values) == 0 {
			continue
		}
		if err := set(l.name, strings.Join(l.values, ",")); err != nil {
			return err
		}
	}

	if c.Concurrency > 0 {
		return set("j", strconv.Itoa(c.Concurrency))
	}
	return nil
}
