// Package tree provides the typed syntax tree the detectors run on.
//
// # Overview
//
// A front end (see internal/javasrc) parses source code once and produces a
// [Unit]: a tree of [Node] values annotated with resolved [Symbol] bindings
// and static [Type] information. After construction the unit is immutable, so
// detectors may inspect independent units from different goroutines without
// coordination.
//
// # Nodes
//
// [Node] is a closed tagged variant. The [Kind] tag selects which of the
// role fields are meaningful:
//
//	Kind             Name           Receiver     Args      Body     Init
//	KindCall         method name    object expr  arguments
//	KindMemberRef    method name    qualifier
//	KindLambda                                             body
//	KindNew          type text                 arguments
//	KindVariable     variable name                                  initializer
//	KindFieldAccess  field name     object expr
//
// Every role field points at one of the node's children; children own no
// back-references except the read-only parent link.
//
// # Model
//
// Detectors do not reach into the front end. They consume the [Model]
// interface, which [Unit] implements:
//
//	KindOf(n)         node kind
//	EnclosingPath(n)  ancestors, innermost first
//	ResolveSymbol(n)  declaration identity, or nil
//	TypeOf(n)         static type, or nil
//	Closure(t)        t and all transitive supertypes
//	ReceiverOf(n)     object expression of a call/reference, or nil
//	NamespaceOf(t)    declaring namespace of t
//
// Unresolved information is reported as nil; callers treat nil as "no match".
package tree
