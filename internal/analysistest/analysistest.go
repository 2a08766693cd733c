// Package analysistest runs a linter over fixture sources and checks its
// findings against expectations written in the sources.
//
// A fixture directory testdata/src/<dir> holds Java files. An expectation is
// a comment of the form
//
//	list.add(s); // want "regexp" "another regexp"
//
// Each regexp must match the message of exactly one finding reported on the
// comment's line. The want clause may also follow another comment on the
// same line, as in "// concmut:ignore foo // want `unused`". Findings without
// a matching expectation and expectations without a matching finding are
// reported as test errors.
package analysistest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/mpyw/concmut/internal/finding"
	"github.com/mpyw/concmut/internal/load"
	"github.com/mpyw/concmut/internal/tree"
)

// Testing is the subset of *testing.T used by Run.
type Testing interface {
	Errorf(format string, args ...any)
}

// Runner analyzes resolved units.
type Runner interface {
	Run(ctx context.Context, units ...*tree.Unit) ([]finding.Finding, error)
}

// TestData returns the absolute path of the testdata directory of the
// package under test.
func TestData() string {
	testdata, err := filepath.Abs("testdata")
	if err != nil {
		panic(err)
	}
	return testdata
}

type key struct {
	file string
	line int
}

type expectation struct {
	re   *regexp.Regexp
	pos  tree.Pos
	used bool
}

// Run loads every directory testdata/src/<dir>, analyzes it with r and
// checks the findings against the want comments. It returns the findings.
func Run(t Testing, testdata string, r Runner, dirs ...string) []finding.Finding {
	if h, ok := t.(interface{ Helper() }); ok {
		h.Helper()
	}

	var all []finding.Finding
	for _, dir := range dirs {
		all = append(all, run(t, filepath.Join(testdata, "src", dir), r)...)
	}
	return all
}

func run(t Testing, dir string, r Runner) []finding.Finding {
	ctx := context.Background()

	if _, err := os.Stat(dir); err != nil {
		t.Errorf("fixture %s: %v", dir, err)
		return nil
	}

	units, err := load.New(nil, 0).Load(ctx, dir)
	if err != nil {
		t.Errorf("load %s: %v", dir, err)
		return nil
	}

	want := make(map[key][]*expectation)
	for _, unit := range units {
		if unit.SyntaxErrors > 0 {
			t.Errorf("%s: fixture has %d syntax errors", unit.File, unit.SyntaxErrors)
		}
		for _, c := range unit.Comments {
			patterns, err := parseWant(c.Text)
			if err != nil {
				t.Errorf("%s: %v", c.Pos, err)
				continue
			}
			for _, re := range patterns {
				k := key{file: unit.File, line: c.Pos.Line}
				want[k] = append(want[k], &expectation{re: re, pos: c.Pos})
			}
		}
	}

	findings, err := r.Run(ctx, units...)
	if err != nil {
		t.Errorf("run %s: %v", dir, err)
		return nil
	}

	for _, f := range findings {
		if !consume(want[key{file: f.Pos.File, line: f.Pos.Line}], f.Message) {
			t.Errorf("%s: unexpected finding: %s", f.Pos, f.Message)
		}
	}

	var missing []*expectation
	for _, exps := range want {
		for _, e := range exps {
			if !e.used {
				missing = append(missing, e)
			}
		}
	}
	sort.Slice(missing, func(i, j int) bool {
		return finding.Compare(finding.Finding{Pos: missing[i].pos}, finding.Finding{Pos: missing[j].pos}) < 0
	})
	for _, e := range missing {
		t.Errorf("%s: no finding was reported matching %#q", e.pos, e.re)
	}

	return findings
}

func consume(exps []*expectation, message string) bool {
	for _, e := range exps {
		if !e.used && e.re.MatchString(message) {
			e.used = true
			return true
		}
	}
	return false
}

// parseWant extracts the patterns of a want comment. Comments without a
// want clause yield nothing.
func parseWant(text string) ([]*regexp.Regexp, error) {
	body := strings.TrimSpace(text)
	switch {
	case strings.HasPrefix(body, "//"):
		body = body[2:]
	case strings.HasPrefix(body, "/*"):
		body = strings.TrimSuffix(body[2:], "*/")
	}
	body = strings.TrimSpace(body)

	if !isWant(body) {
		i := strings.Index(body, "// want")
		if i < 0 || !isWant(body[i+len("// "):]) {
			return nil, nil
		}
		body = body[i+len("// "):]
	}
	rest := strings.TrimSpace(strings.TrimPrefix(body, "want"))

	var out []*regexp.Regexp
	for rest != "" {
		quoted, err := strconv.QuotedPrefix(rest)
		if err != nil {
			return nil, fmt.Errorf("malformed want clause %q", text)
		}
		pattern, err := strconv.Unquote(quoted)
		if err != nil {
			return nil, fmt.Errorf("malformed want clause %q: %w", text, err)
		}
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("want pattern %q: %w", pattern, err)
		}
		out = append(out, re)
		rest = strings.TrimSpace(rest[len(quoted):])
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("want clause without patterns: %q", text)
	}
	return out, nil
}

// isWant reports whether body starts with a want clause, with or without
// patterns.
func isWant(body string) bool {
	return body == "want" || strings.HasPrefix(body, "want ") || strings.HasPrefix(body, "want\t")
}
