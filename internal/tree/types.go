package tree

import (
	"sort"
	"strings"
)

// SymbolKind classifies a declaration.
type SymbolKind int

// Symbol kinds.
const (
	SymLocal SymbolKind = iota
	SymParam
	SymField
	SymMethod
	SymClass
)

func (k SymbolKind) String() string {
	switch k {
	case SymLocal:
		return "local"
	case SymParam:
		return "param"
	case SymField:
		return "field"
	case SymMethod:
		return "method"
	case SymClass:
		return "class"
	}
	return "unknown"
}

// Symbol is the identity of a declaration. Symbols are compared by pointer.
type Symbol struct {
	Name string
	Kind SymbolKind
	// Owner is the declaring type for fields and methods.
	Owner *Type
	// Type is the declared type of variables, or the return type of methods.
	Type   *Type
	Static bool
	// Returns describes how the result type of a method relates to its
	// receiver. ReturnsSelf methods yield the receiver's static type.
	Returns ReturnRule
	Decl    *Node
}

// ReturnRule describes a method's result type.
type ReturnRule int

// Return rules.
const (
	ReturnsDeclared ReturnRule = iota
	ReturnsSelf
)

// Type is a named type with its direct supertypes.
type Type struct {
	Namespace string
	Name      string
	Supers    []*Type
	Interface bool

	methods map[string]*Symbol
	fields  map[string]*Symbol
}

// QualifiedName returns namespace.Name, or Name for the default namespace.
func (t *Type) QualifiedName() string {
	if t == nil {
		return ""
	}
	if t.Namespace == "" {
		return t.Name
	}
	return t.Namespace + "." + t.Name
}

func (t *Type) String() string {
	return t.QualifiedName()
}

// DeclareMethod adds a method declared directly by t and returns its symbol.
// Redeclaring a name returns the existing symbol.
func (t *Type) DeclareMethod(name string, static bool, result *Type, rule ReturnRule) *Symbol {
	if t.methods == nil {
		t.methods = make(map[string]*Symbol)
	}
	if sym, ok := t.methods[name]; ok {
		return sym
	}
	sym := &Symbol{Name: name, Kind: SymMethod, Owner: t, Type: result, Static: static, Returns: rule}
	t.methods[name] = sym
	return sym
}

// DeclareField adds a field declared directly by t and returns its symbol.
func (t *Type) DeclareField(name string, static bool, typ *Type) *Symbol {
	if t.fields == nil {
		t.fields = make(map[string]*Symbol)
	}
	if sym, ok := t.fields[name]; ok {
		return sym
	}
	sym := &Symbol{Name: name, Kind: SymField, Owner: t, Type: typ, Static: static}
	t.fields[name] = sym
	return sym
}

// LookupMethod finds the first declaration of name in the closure of t.
func (t *Type) LookupMethod(name string) *Symbol {
	for _, c := range Closure(t) {
		if sym, ok := c.methods[name]; ok {
			return sym
		}
	}
	return nil
}

// LookupField finds the first declaration of field name in the closure of t.
func (t *Type) LookupField(name string) *Symbol {
	for _, c := range Closure(t) {
		if sym, ok := c.fields[name]; ok {
			return sym
		}
	}
	return nil
}

// Closure returns t followed by all of its transitive supertypes in
// breadth-first order, without duplicates. A nil type has an empty closure.
func Closure(t *Type) []*Type {
	if t == nil {
		return nil
	}
	seen := map[*Type]bool{t: true}
	out := []*Type{t}
	for i := 0; i < len(out); i++ {
		for _, s := range out[i].Supers {
			if s == nil || seen[s] {
				continue
			}
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

// IsSubtype reports whether the closure of t contains the type named qname.
func IsSubtype(t *Type, qname string) bool {
	for _, c := range Closure(t) {
		if c.QualifiedName() == qname {
			return true
		}
	}
	return false
}

// Universe indexes types by qualified name. A universe may fall back to a
// parent, which lets per-unit declarations shadow a shared library model
// without mutating it.
type Universe struct {
	parent *Universe
	types  map[string]*Type
}

// NewUniverse creates an empty universe with an optional parent.
func NewUniverse(parent *Universe) *Universe {
	return &Universe{parent: parent, types: make(map[string]*Type)}
}

// Define returns the type named namespace.name, creating it in u if absent.
func (u *Universe) Define(namespace, name string) *Type {
	qname := qualify(namespace, name)
	if t, ok := u.types[qname]; ok {
		return t
	}
	t := &Type{Namespace: namespace, Name: name}
	u.types[qname] = t
	return t
}

// Lookup finds a type by qualified name in u or its parents.
func (u *Universe) Lookup(qname string) *Type {
	for cur := u; cur != nil; cur = cur.parent {
		if t, ok := cur.types[qname]; ok {
			return t
		}
	}
	return nil
}

// Namespaces returns the distinct namespaces known to u and its parents.
func (u *Universe) Namespaces() []string {
	set := make(map[string]bool)
	for cur := u; cur != nil; cur = cur.parent {
		for _, t := range cur.types {
			set[t.Namespace] = true
		}
	}
	out := make([]string, 0, len(set))
	for ns := range set {
		out = append(out, ns)
	}
	sort.Strings(out)
	return out
}

func qualify(namespace, name string) string {
	if namespace == "" {
		return name
	}
	return namespace + "." + name
}

// SplitQualified splits "a.b.C" into ("a.b", "C").
func SplitQualified(qname string) (namespace, name string) {
	if i := strings.LastIndex(qname, "."); i >= 0 {
		return qname[:i], qname[i+1:]
	}
	return "", qname
}
