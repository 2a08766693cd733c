package analysistest

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpyw/concmut/internal/finding"
	"github.com/mpyw/concmut/internal/tree"
)

type recorder struct {
	errors []string
}

func (r *recorder) Errorf(format string, args ...any) {
	r.errors = append(r.errors, fmt.Sprintf(format, args...))
}

// lineRunner reports one finding per (line, message) pair in every unit.
type lineRunner map[int][]string

func (lr lineRunner) Run(_ context.Context, units ...*tree.Unit) ([]finding.Finding, error) {
	var out []finding.Finding
	for _, u := range units {
		for line, msgs := range lr {
			for _, msg := range msgs {
				f := finding.New("test", msg, nil)
				f.Pos = tree.Pos{File: u.File, Line: line, Column: 5}
				out = append(out, f)
			}
		}
	}
	finding.Sort(out)
	return out, nil
}

func TestParseWant(t *testing.T) {
	tests := []struct {
		text    string
		want    []string
		wantErr bool
	}{
		{text: `// want "a" "b"`, want: []string{"a", "b"}},
		{text: "/* want `x\\.y` */", want: []string{`x\.y`}},
		{text: `// concmut:ignore foo // want "unused"`, want: []string{"unused"}},
		{text: `// plain comment`},
		{text: `// want`, wantErr: true},
		{text: `/* want */`, wantErr: true},
		{text: `// concmut:ignore foo // want`, wantErr: true},
		{text: `// wanted "a"`},
		{text: `// concmut:ignore foo // wanted`},
		{text: `// want "unterminated`, wantErr: true},
		{text: `// want "("`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, err := parseWant(tt.text)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			var patterns []string
			for _, re := range got {
				patterns = append(patterns, re.String())
			}
			assert.Equal(t, tt.want, patterns)
		})
	}
}

func TestRunMatches(t *testing.T) {
	rec := &recorder{}
	findings := Run(rec, TestData(), lineRunner{
		7: {"first message", "second message"},
		8: {"third message"},
	}, "sample")

	assert.Empty(t, rec.errors)
	assert.Len(t, findings, 3)
}

func TestRunReportsMismatches(t *testing.T) {
	rec := &recorder{}
	Run(rec, TestData(), lineRunner{
		7: {"first message"},
		9: {"surprise"},
	}, "sample")

	file := filepath.Join(TestData(), "src", "sample", "Sample.java")
	assert.ElementsMatch(t, []string{
		file + ":9:5: unexpected finding: surprise",
		file + ":7:20: no finding was reported matching `second`",
		file + ":8:20: no finding was reported matching `third`",
	}, rec.errors)
}

func TestRunMissingDir(t *testing.T) {
	rec := &recorder{}
	Run(rec, TestData(), lineRunner{}, "nosuchdir")
	assert.Len(t, rec.errors, 1)
}
