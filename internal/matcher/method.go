package matcher

import (
	"slices"

	"github.com/mpyw/concmut/internal/tree"
	"github.com/mpyw/concmut/internal/typeutil"
)

type methodKind int

const (
	instanceMethod methodKind = iota
	staticMethod
	constructor
)

// MethodMatcher matches calls, member references and constructions by the
// type they are invoked on and by name. Builder methods return modified
// copies, so a partially built matcher can be shared.
type MethodMatcher struct {
	kind  methodKind
	types []string
	names []string
}

// InstanceMethod matches a call or member reference with an object receiver.
// Narrow it with OnDescendantOf and Named.
func InstanceMethod() MethodMatcher {
	return MethodMatcher{kind: instanceMethod}
}

// StaticMethod matches a call to a static method. Narrow it with OnClass.
func StaticMethod() MethodMatcher {
	return MethodMatcher{kind: staticMethod}
}

// Constructor matches an object construction. Narrow it with ForClass.
func Constructor() MethodMatcher {
	return MethodMatcher{kind: constructor}
}

// OnDescendantOf requires the receiver type to descend from qname.
func (m MethodMatcher) OnDescendantOf(qname string) MethodMatcher {
	return m.OnDescendantOfAny(qname)
}

// OnDescendantOfAny requires the receiver type to descend from one of qnames.
func (m MethodMatcher) OnDescendantOfAny(qnames ...string) MethodMatcher {
	m.types = append(slices.Clone(m.types), qnames...)
	return m
}

// OnClass requires the static method to be declared by qname.
func (m MethodMatcher) OnClass(qname string) MethodMatcher {
	return m.OnDescendantOfAny(qname)
}

// ForClass requires the constructed type to be exactly qname.
func (m MethodMatcher) ForClass(qname string) MethodMatcher {
	return m.OnDescendantOfAny(qname)
}

// Named requires the method name to be name.
func (m MethodMatcher) Named(name string) MethodMatcher {
	return m.NamedAnyOf(name)
}

// NamedAnyOf requires the method name to be one of names.
func (m MethodMatcher) NamedAnyOf(names ...string) MethodMatcher {
	m.names = append(slices.Clone(m.names), names...)
	return m
}

// Matches implements Matcher.
func (m MethodMatcher) Matches(n *tree.Node, s *State) bool {
	if n == nil {
		return false
	}

	switch m.kind {
	case instanceMethod:
		return m.matchInstance(n, s)
	case staticMethod:
		return m.matchStatic(n, s)
	case constructor:
		return m.matchConstructor(n, s)
	}

	return false
}

func (m MethodMatcher) matchInstance(n *tree.Node, s *State) bool {
	kind := s.Model.KindOf(n)
	if kind != tree.KindCall && kind != tree.KindMemberRef {
		return false
	}
	if !m.nameMatches(n.Name) {
		return false
	}
	if sym := s.Model.ResolveSymbol(n); sym != nil && sym.Static {
		return false
	}

	recv := s.Model.ReceiverOf(n)
	if recv == nil {
		return false
	}
	if len(m.types) == 0 {
		return true
	}

	return typeutil.DescendsFromAny(s.Model, s.Model.TypeOf(recv), m.types...)
}

func (m MethodMatcher) matchStatic(n *tree.Node, s *State) bool {
	if s.Model.KindOf(n) != tree.KindCall || !m.nameMatches(n.Name) {
		return false
	}

	var owner *tree.Type
	if sym := s.Model.ResolveSymbol(n); sym != nil {
		if !sym.Static {
			return false
		}
		owner = sym.Owner
	} else if n.Receiver != nil && s.Model.KindOf(n.Receiver) == tree.KindTypeName {
		// Unresolved method on a resolved class: the qualification is still static.
		owner = s.Model.TypeOf(n.Receiver)
	}
	if owner == nil {
		return false
	}

	return m.exactType(owner, s)
}

func (m MethodMatcher) matchConstructor(n *tree.Node, s *State) bool {
	if s.Model.KindOf(n) != tree.KindNew {
		return false
	}

	t := s.Model.TypeOf(n)
	if t == nil {
		return false
	}

	return m.exactType(t, s)
}

func (m MethodMatcher) exactType(t *tree.Type, s *State) bool {
	if len(m.types) == 0 {
		return true
	}
	for _, qname := range m.types {
		if typeutil.IsExactly(s.Model, t, qname) {
			return true
		}
	}
	return false
}

func (m MethodMatcher) nameMatches(name string) bool {
	return len(m.names) == 0 || slices.Contains(m.names, name)
}
