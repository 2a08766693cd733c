// Package javasrc builds resolved [tree.Unit] values from Java source code.
//
// # Overview
//
// Parsing is done by tree-sitter (github.com/smacker/go-tree-sitter/java).
// The concrete syntax tree is then lowered into the closed node set of
// internal/tree and resolved in three passes:
//
//	1. declare   every class, interface, enum and record in the file
//	2. members   supertypes, fields and method signatures of those types
//	3. convert   bodies, with lexical scopes for locals and parameters
//
// Declaring members before converting bodies lets a static initializer refer
// to a field declared further down the class.
//
// # Library Model
//
// Types outside the file come from [JDK], a fixed model of the collection,
// stream, executor and UI-dispatch types the detectors reason about. Unknown
// imported classes become opaque placeholder types so their namespace is
// still available to the concurrency-safety classifier.
//
// # Lowering Rules
//
//	argument_list, parenthesized_expression,
//	expression_statement, class bodies          replaced by their children
//	static_initializer                          Block with Static set
//	field_declaration / local declarations      one Variable per declarator
//	object_creation_expression with class_body  New with a Class child
//	method_reference                            MemberRef, Receiver = qualifier
//
// Generics are erased: List<String> resolves to java.util.List. Methods
// marked "$self" in the model (parallel, sequential, filter, ...) return the
// static type of their receiver, so IntStream.range(0, n).parallel() is an
// IntStream.
//
// # Errors
//
// tree-sitter recovers from syntax errors. [Parse] keeps the recovered tree
// and reports the number of ERROR and MISSING nodes in Unit.SyntaxErrors;
// callers decide whether to warn.
package javasrc
