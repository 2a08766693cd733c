package report_test

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpyw/concmut/internal/finding"
	"github.com/mpyw/concmut/internal/report"
	"github.com/mpyw/concmut/internal/tree"
)

func sampleFinding(file string, line int, text string) finding.Finding {
	n := tree.NewNode(tree.KindCall, "add", tree.Pos{File: file, Line: line, Column: 5})
	n.Text = text
	return finding.New("unsyncmutation", "modifying a non-concurrent collection in parallel may lead to undefined behavior", n)
}

func TestPrintText(t *testing.T) {
	var buf bytes.Buffer
	p, err := report.NewPrinter(&buf, report.FormatText, false)
	require.NoError(t, err)

	require.NoError(t, p.Print([]finding.Finding{sampleFinding("Main.java", 12, "result.add(s)")}))
	assert.Equal(t,
		"Main.java:12:5: modifying a non-concurrent collection in parallel may lead to undefined behavior (unsyncmutation)\n",
		buf.String())
}

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer
	p, err := report.NewPrinter(&buf, report.FormatJSON, true)
	require.NoError(t, err)
	require.NoError(t, p.Print([]finding.Finding{sampleFinding("Main.java", 3, "a.add(x)")}))

	var got struct {
		Findings []struct {
			Checker  string `json:"checker"`
			Severity string `json:"severity"`
			Pos      struct {
				File string `json:"file"`
				Line int    `json:"line"`
			} `json:"pos"`
		} `json:"findings"`
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, 1, got.Count)
	require.Len(t, got.Findings, 1)
	assert.Equal(t, "unsyncmutation", got.Findings[0].Checker)
	assert.Equal(t, "warning", got.Findings[0].Severity)
	assert.Equal(t, "Main.java", got.Findings[0].Pos.File)
	assert.Equal(t, 3, got.Findings[0].Pos.Line)
}

func TestPrintJSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	p, err := report.NewPrinter(&buf, report.FormatJSON, false)
	require.NoError(t, err)
	require.NoError(t, p.Print(nil))
	assert.JSONEq(t, `{"findings": [], "count": 0}`, buf.String())
}

func TestUnknownFormat(t *testing.T) {
	_, err := report.NewPrinter(&bytes.Buffer{}, report.Format("xml"), false)
	assert.ErrorIs(t, err, report.ErrUnknownFormat)
}

func TestBaselineFilter(t *testing.T) {
	known := sampleFinding("Main.java", 10, "result.add(s)")
	moved := sampleFinding("Main.java", 14, "result.add(s)")
	fresh := sampleFinding("Main.java", 20, "other.add(s)")

	b, err := report.NewBaseline([]finding.Finding{known})
	require.NoError(t, err)

	got, err := b.Filter([]finding.Finding{moved, fresh})
	require.NoError(t, err)
	assert.Equal(t, []finding.Finding{fresh}, got, "line changes keep the fingerprint")

	got, err = b.Filter([]finding.Finding{known, moved})
	require.NoError(t, err)
	assert.Equal(t, []finding.Finding{moved}, got, "each entry suppresses one occurrence")
}

func TestBaselineRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "baseline.yml")

	b, err := report.NewBaseline([]finding.Finding{
		sampleFinding("A.java", 1, "x.add(1)"),
		sampleFinding("A.java", 2, "x.add(1)"),
	})
	require.NoError(t, err)
	require.NoError(t, b.Write(ctx, path))

	read, err := report.ReadBaseline(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, b.Findings, read.Findings)
	for _, n := range read.Findings {
		assert.Equal(t, 2, n)
	}

	_, err = report.ReadBaseline(ctx, path+".missing")
	assert.Error(t, err)
}
