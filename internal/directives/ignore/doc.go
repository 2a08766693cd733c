// Package ignore provides // concmut:ignore directive parsing.
//
// # Directive Placement
//
// The directive can appear on the line before or the same line:
//
//	// concmut:ignore
//	list.forEach(s -> list.add(s));  // Warning suppressed
//
//	list.forEach(s -> list.add(s));  // concmut:ignore
//
// # Checker-Specific Ignores
//
//	// concmut:ignore unsyncmutation
//	items.parallelStream().forEach(out::add);
//
//	// concmut:ignore unsyncmutation,staticparallel - tolerated in the fixture
//
// Valid names are foreachmutation, unsyncmutation and staticparallel.
//
// # Unused Ignore Detection
//
// [Map.GetUnusedIgnores] returns directives that suppressed nothing; the
// runner reports them as "unused concmut:ignore directive".
package ignore
