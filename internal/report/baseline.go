package report

import (
	"bytes"
	"context"
	"fmt"

	"github.com/viant/afs"
	"gopkg.in/yaml.v3"

	"github.com/mpyw/concmut/internal/finding"
	"github.com/mpyw/concmut/internal/load"
)

const baselineVersion = 1

// Baseline maps finding fingerprints to occurrence counts.
type Baseline struct {
	Version  int            `yaml:"version"`
	Findings map[string]int `yaml:"findings"`
}

// NewBaseline records findings.
func NewBaseline(findings []finding.Finding) (*Baseline, error) {
	b := &Baseline{Version: baselineVersion, Findings: make(map[string]int)}
	for _, f := range findings {
		fp, err := finding.Fingerprint(f)
		if err != nil {
			return nil, err
		}
		b.Findings[fp]++
	}
	return b, nil
}

// ReadBaseline loads a baseline written by [Baseline.Write].
func ReadBaseline(ctx context.Context, location string) (*Baseline, error) {
	data, err := afs.New().DownloadWithURL(ctx, load.Location(location))
	if err != nil {
		return nil, fmt.Errorf("read baseline %s: %w", location, err)
	}

	b := &Baseline{}
	if err := yaml.Unmarshal(data, b); err != nil {
		return nil, fmt.Errorf("baseline %s: %w", location, err)
	}
	if b.Version != baselineVersion {
		return nil, fmt.Errorf("baseline %s: unsupported version %d", location, b.Version)
	}
	if b.Findings == nil {
		b.Findings = make(map[string]int)
	}
	return b, nil
}

// Write stores the baseline at location.
func (b *Baseline) Write(ctx context.Context, location string) error {
	data, err := yaml.Marshal(b)
	if err != nil {
		return err
	}
	if err := afs.New().Upload(ctx, load.Location(location), 0o644, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("write baseline %s: %w", location, err)
	}
	return nil
}

// Filter returns the findings not covered by the baseline. Each recorded
// occurrence suppresses one matching finding; b is not modified.
func (b *Baseline) Filter(findings []finding.Finding) ([]finding.Finding, error) {
	remaining := make(map[string]int, len(b.Findings))
	for fp, n := range b.Findings {
		remaining[fp] = n
	}

	var out []finding.Finding
	for _, f := range findings {
		fp, err := finding.Fingerprint(f)
		if err != nil {
			return nil, err
		}
		if remaining[fp] > 0 {
			remaining[fp]--
			continue
		}
		out = append(out, f)
	}
	return out, nil
}
