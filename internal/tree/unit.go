package tree

// Model is the read-only view of a resolved program that detectors consume.
type Model interface {
	KindOf(n *Node) Kind
	EnclosingPath(n *Node) []*Node
	ResolveSymbol(n *Node) *Symbol
	TypeOf(n *Node) *Type
	Closure(t *Type) []*Type
	ReceiverOf(n *Node) *Node
	NamespaceOf(t *Type) string
}

// Comment is a source comment kept for directive processing.
type Comment struct {
	Text string
	Pos  Pos
}

// Unit is one resolved compilation unit.
type Unit struct {
	File     string
	Package  string
	Source   []byte
	Root     *Node
	Comments []Comment
	Types    *Universe
	// SyntaxErrors counts regions the front end could not parse.
	SyntaxErrors int
}

var _ Model = (*Unit)(nil)

// KindOf returns the kind of n, or KindInvalid for nil.
func (u *Unit) KindOf(n *Node) Kind {
	if n == nil {
		return KindInvalid
	}
	return n.Kind
}

// EnclosingPath returns the ancestors of n, innermost first.
func (u *Unit) EnclosingPath(n *Node) []*Node {
	if n == nil {
		return nil
	}
	return n.Ancestors()
}

// ResolveSymbol returns the declaration n refers to, or nil.
func (u *Unit) ResolveSymbol(n *Node) *Symbol {
	if n == nil {
		return nil
	}
	return n.Sym
}

// TypeOf returns the static type of n, or nil if unknown.
func (u *Unit) TypeOf(n *Node) *Type {
	if n == nil {
		return nil
	}
	return n.Type
}

// Closure returns t and its transitive supertypes.
func (u *Unit) Closure(t *Type) []*Type {
	return Closure(t)
}

// ReceiverOf returns the object expression a call or member reference is
// invoked against. Unqualified and statically qualified forms have none.
func (u *Unit) ReceiverOf(n *Node) *Node {
	if n == nil {
		return nil
	}
	switch n.Kind {
	case KindCall, KindMemberRef, KindFieldAccess:
		if n.Receiver == nil || n.Receiver.Kind == KindTypeName {
			return nil
		}
		return n.Receiver
	}
	return nil
}

// NamespaceOf returns the declaring namespace of t.
func (u *Unit) NamespaceOf(t *Type) string {
	if t == nil {
		return ""
	}
	return t.Namespace
}
