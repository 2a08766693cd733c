// Package ignore handles // concmut:ignore directives.
package ignore

import (
	"cmp"
	"slices"
	"strings"

	"github.com/mpyw/concmut/internal/tree"
)

// Prefix is the directive keyword.
const Prefix = "concmut:ignore"

// CheckerName represents a checker that can be ignored.
type CheckerName string

// Valid checker names.
const (
	ForEachMutation CheckerName = "foreachmutation"
	UnsyncMutation  CheckerName = "unsyncmutation"
	StaticParallel  CheckerName = "staticparallel"
)

// AllCheckerNames returns all valid checker names.
func AllCheckerNames() []CheckerName {
	return []CheckerName{
		ForEachMutation,
		UnsyncMutation,
		StaticParallel,
	}
}

// Entry tracks an ignore directive and its usage.
type Entry struct {
	pos      tree.Pos             // Position of the ignore comment
	checkers []CheckerName        // List of checker names (empty = all)
	used     map[CheckerName]bool // Track usage per checker
}

// Map tracks ignore entries by line number.
type Map map[int]*Entry

// EnabledCheckers tracks which checkers are currently enabled.
type EnabledCheckers map[CheckerName]bool

// Build scans the comments of a unit for ignore directives.
func Build(comments []tree.Comment) Map {
	m := make(Map)

	for _, c := range comments {
		if checkers, ok := parseIgnoreComment(c.Text); ok {
			m[c.Pos.Line] = &Entry{
				pos:      c.Pos,
				checkers: checkers,
				used:     make(map[CheckerName]bool),
			}
		}
	}

	return m
}

// parseIgnoreComment parses an ignore directive and returns the checker names.
// Returns nil slice if no specific checkers are specified (ignore all).
// Returns false if not an ignore comment.
//
// Supported formats:
//   - // concmut:ignore                                -> ignore all checkers
//   - // concmut:ignore unsyncmutation                 -> ignore specific checker
//   - // concmut:ignore unsyncmutation,staticparallel  -> ignore multiple checkers
//   - // concmut:ignore - reason                       -> ignore all with comment
//   - /* concmut:ignore foreachmutation */             -> block comment form
func parseIgnoreComment(text string) ([]CheckerName, bool) {
	switch {
	case strings.HasPrefix(text, "//"):
		text = strings.TrimPrefix(text, "//")
	case strings.HasPrefix(text, "/*"):
		text = strings.TrimSuffix(strings.TrimPrefix(text, "/*"), "*/")
	}
	text = strings.TrimSpace(text)

	if !strings.HasPrefix(text, Prefix) {
		return nil, false
	}

	rest := strings.TrimPrefix(text, Prefix)
	if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
		return nil, false // e.g. concmut:ignored
	}
	rest = strings.TrimSpace(rest)
	if strings.HasPrefix(rest, "//") {
		return nil, true
	}

	// Stop at comment markers: " - " or " //"
	if idx := strings.Index(rest, " - "); idx >= 0 {
		rest = rest[:idx]
	}
	if idx := strings.Index(rest, " //"); idx >= 0 {
		rest = rest[:idx]
	}
	if strings.HasPrefix(rest, "- ") || rest == "-" {
		return nil, true
	}

	rest = strings.TrimSpace(rest)
	if rest == "" {
		return nil, true
	}

	parts := strings.Split(rest, ",")
	checkers := make([]CheckerName, 0, len(parts))

	for _, part := range parts {
		name := CheckerName(strings.TrimSpace(part))
		if name != "" {
			checkers = append(checkers, name)
		}
	}

	return checkers, true
}

// ShouldIgnore returns true if the given line should be ignored for the specified checker.
// It checks if the same line or the previous line has an ignore comment.
// When an ignore is used, it marks the entry as used for that checker.
func (m Map) ShouldIgnore(line int, checker CheckerName) bool {
	if m.shouldIgnoreEntry(m[line], checker) {
		return true
	}

	return m.shouldIgnoreEntry(m[line-1], checker)
}

func (m Map) shouldIgnoreEntry(entry *Entry, checker CheckerName) bool {
	if entry == nil {
		return false
	}

	if len(entry.checkers) == 0 || slices.Contains(entry.checkers, checker) {
		entry.used[checker] = true
		return true
	}

	return false
}

// UnusedIgnore represents an unused ignore directive.
type UnusedIgnore struct {
	Pos      tree.Pos
	Checkers []CheckerName // Unused checker names (empty if entire directive is unused)
}

// GetUnusedIgnores returns ignore directives that were not used, ordered by
// line. Checker names that are unknown or disabled count as unused.
func (m Map) GetUnusedIgnores(enabled EnabledCheckers) []UnusedIgnore {
	var unused []UnusedIgnore

	for _, entry := range m {
		if len(entry.checkers) == 0 {
			anyUsed := false
			for checker := range enabled {
				if entry.used[checker] {
					anyUsed = true
					break
				}
			}
			if !anyUsed {
				unused = append(unused, UnusedIgnore{Pos: entry.pos})
			}
			continue
		}

		var unusedCheckers []CheckerName
		for _, checker := range entry.checkers {
			if !enabled[checker] || !entry.used[checker] {
				unusedCheckers = append(unusedCheckers, checker)
			}
		}
		if len(unusedCheckers) > 0 {
			unused = append(unused, UnusedIgnore{
				Pos:      entry.pos,
				Checkers: unusedCheckers,
			})
		}
	}

	slices.SortFunc(unused, func(a, b UnusedIgnore) int {
		return cmp.Compare(a.Pos.Line, b.Pos.Line)
	})

	return unused
}
