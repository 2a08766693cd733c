// Package typeutil provides type closure helpers and the concurrency-safety
// classifier.
//
// # Descendant Checks
//
// [DescendsFrom] walks the closure of a type (the type itself plus every
// transitive supertype) through the [tree.Model] and compares qualified
// names:
//
//	typeutil.DescendsFrom(model, listType, "java.util.Collection") // true for ArrayList
//
// # Concurrency Safety
//
// [IsInherentlyConcurrentSafe] classifies a type as safe for concurrent
// structural mutation when any type in its closure is declared in a reserved
// namespace, by default java.util.concurrent:
//
//	CopyOnWriteArrayList  -> java.util.concurrent          -> safe
//	ConcurrentHashMap     -> java.util.concurrent          -> safe
//	ArrayList             -> java.util, java.lang          -> not safe
//	<unresolved>          -> nil                           -> not safe
//
// Unknown types are deliberately classified as not safe, so a missing type
// never suppresses a report. Nested namespaces such as
// java.util.concurrent.atomic count as reserved; a namespace that merely
// shares the prefix text does not.
package typeutil
