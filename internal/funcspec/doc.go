// Package funcspec provides method specification parsing and matching.
//
// # Specification Format
//
// A specification names a method on a type:
//
//	java.util.concurrent.ExecutorService.submit   # instance or static method
//	java.awt.EventQueue.invokeLater
//	java.lang.Thread.new                          # constructor
//
// Type names are recognized by their leading upper-case letter, so nested
// namespaces need no quoting.
//
// # Parsing
//
//	spec := funcspec.Parse("java.util.concurrent.ExecutorService.submit")
//	// spec.Namespace = "java.util.concurrent"
//	// spec.TypeName  = "ExecutorService"
//	// spec.FuncName  = "submit"
//
// [ParseList] parses the comma-separated lists accepted by the
// -thread-creators and -parallel-sources flags and rejects entries without a
// type.
//
// # Matching
//
// [Spec.Matches] compares a resolved method symbol against the exact
// declaring type; [Spec.MatchesDescendant] accepts any type whose closure
// contains the spec's type. Instance APIs use the latter on the receiver type,
// static APIs the former.
package funcspec
