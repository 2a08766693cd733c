package ignore

import (
	"testing"

	"github.com/mpyw/concmut/internal/tree"
)

func TestAllCheckerNames(t *testing.T) {
	names := AllCheckerNames()
	if len(names) != 3 {
		t.Errorf("Expected 3 checker names, got %d", len(names))
	}
}

func TestParseIgnoreComment(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		want   []CheckerName
		wantOk bool
	}{
		{
			name:   "basic ignore all",
			text:   "// concmut:ignore",
			want:   nil,
			wantOk: true,
		},
		{
			name:   "ignore specific checker",
			text:   "//concmut:ignore unsyncmutation",
			want:   []CheckerName{UnsyncMutation},
			wantOk: true,
		},
		{
			name:   "ignore multiple checkers",
			text:   "// concmut:ignore unsyncmutation,staticparallel",
			want:   []CheckerName{UnsyncMutation, StaticParallel},
			wantOk: true,
		},
		{
			name:   "ignore with comment dash",
			text:   "// concmut:ignore - this is a reason",
			want:   nil,
			wantOk: true,
		},
		{
			name:   "ignore specific with comment",
			text:   "// concmut:ignore foreachmutation - this is a reason",
			want:   []CheckerName{ForEachMutation},
			wantOk: true,
		},
		{
			name:   "block comment",
			text:   "/* concmut:ignore staticparallel */",
			want:   []CheckerName{StaticParallel},
			wantOk: true,
		},
		{
			name:   "not an ignore comment",
			text:   "// regular comment",
			want:   nil,
			wantOk: false,
		},
		{
			name:   "longer keyword",
			text:   "// concmut:ignored",
			want:   nil,
			wantOk: false,
		},
		{
			name:   "ignore with inline comment",
			text:   "// concmut:ignore unsyncmutation // comment",
			want:   []CheckerName{UnsyncMutation},
			wantOk: true,
		},
		{
			name:   "ignore all with inline comment",
			text:   "// concmut:ignore // comment",
			want:   nil,
			wantOk: true,
		},
		{
			name:   "ignore dash only",
			text:   "// concmut:ignore -",
			want:   nil,
			wantOk: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseIgnoreComment(tt.text)
			if ok != tt.wantOk {
				t.Errorf("parseIgnoreComment() ok = %v, want %v", ok, tt.wantOk)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("parseIgnoreComment() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("parseIgnoreComment()[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func comments() []tree.Comment {
	return []tree.Comment{
		{Text: "// concmut:ignore", Pos: tree.Pos{Line: 3}},
		{Text: "// concmut:ignore unsyncmutation", Pos: tree.Pos{Line: 6}},
		{Text: "// concmut:ignore foreachmutation", Pos: tree.Pos{Line: 9}},
		{Text: "// just a comment", Pos: tree.Pos{Line: 12}},
	}
}

func TestBuild(t *testing.T) {
	m := Build(comments())
	if len(m) != 3 {
		t.Errorf("Expected 3 entries, got %d", len(m))
	}
}

func TestShouldIgnore(t *testing.T) {
	m := Build(comments())

	tests := []struct {
		line    int
		checker CheckerName
		want    bool
	}{
		{3, UnsyncMutation, true},
		{4, StaticParallel, true},
		{5, StaticParallel, false},
		{7, UnsyncMutation, true},
		{7, ForEachMutation, false},
		{10, ForEachMutation, true},
		{13, ForEachMutation, false},
	}

	for _, tt := range tests {
		if got := m.ShouldIgnore(tt.line, tt.checker); got != tt.want {
			t.Errorf("ShouldIgnore(%d, %s) = %v, want %v", tt.line, tt.checker, got, tt.want)
		}
	}
}

func TestGetUnusedIgnores(t *testing.T) {
	m := Build(comments())
	enabled := EnabledCheckers{ForEachMutation: true, UnsyncMutation: true}

	m.ShouldIgnore(7, UnsyncMutation)

	unused := m.GetUnusedIgnores(enabled)
	if len(unused) != 2 {
		t.Fatalf("Expected 2 unused ignores, got %d: %v", len(unused), unused)
	}
	if unused[0].Pos.Line != 3 || len(unused[0].Checkers) != 0 {
		t.Errorf("unused[0] = %+v, want ignore-all at line 3", unused[0])
	}
	if unused[1].Pos.Line != 9 || len(unused[1].Checkers) != 1 || unused[1].Checkers[0] != ForEachMutation {
		t.Errorf("unused[1] = %+v, want foreachmutation at line 9", unused[1])
	}
}

func TestGetUnusedIgnoresDisabledChecker(t *testing.T) {
	m := Build([]tree.Comment{{Text: "// concmut:ignore staticparallel", Pos: tree.Pos{Line: 1}}})

	m.ShouldIgnore(2, StaticParallel)

	unused := m.GetUnusedIgnores(EnabledCheckers{UnsyncMutation: true})
	if len(unused) != 1 || unused[0].Checkers[0] != StaticParallel {
		t.Errorf("Expected disabled checker to be reported, got %v", unused)
	}
}
