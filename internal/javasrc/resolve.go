package javasrc

import (
	"strings"
	"unicode"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/mpyw/concmut/internal/tree"
)

// builder converts one tree-sitter tree into a resolved tree.Unit.
type builder struct {
	file string
	src  string
	unit *tree.Unit

	types *tree.Universe
	pkg   string

	imports         map[string]string // simple name -> qualified name
	wildcards       []string          // on-demand imported packages
	staticImports   map[string]string // member name -> owner
	staticWildcards []string          // owners imported with .*

	local map[string]*tree.Type // types declared in this file, by simple and nested name
	decls map[*sitter.Node]*tree.Type
	order []*sitter.Node

	class *classFrame
	scope *varScope
	anon  int
}

type classFrame struct {
	typ   *tree.Type
	outer *classFrame
}

type varScope struct {
	parent *varScope
	vars   map[string]*tree.Symbol
}

func newBuilder(filename string, src []byte, types *tree.Universe) *builder {
	return &builder{
		file:          filename,
		src:           string(src),
		types:         types,
		imports:       make(map[string]string),
		staticImports: make(map[string]string),
		local:         make(map[string]*tree.Type),
		decls:         make(map[*sitter.Node]*tree.Type),
	}
}

func (b *builder) text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	start, end := int(n.StartByte()), int(n.EndByte())
	if start > end || end > len(b.src) {
		return ""
	}
	return b.src[start:end]
}

func (b *builder) pos(n *sitter.Node) tree.Pos {
	p := n.StartPoint()
	return tree.Pos{
		File:   b.file,
		Line:   int(p.Row) + 1,
		Column: int(p.Column) + 1,
		Offset: int(n.StartByte()),
	}
}

// header records the package and the imports of the unit.
func (b *builder) header(root *sitter.Node) {
	for i := 0; i < int(root.NamedChildCount()); i++ {
		c := root.NamedChild(i)
		switch c.Type() {
		case "package_declaration":
			if name := firstNamedOf(c, "scoped_identifier", "identifier"); name != nil {
				b.pkg = compact(b.text(name))
			}
		case "import_declaration":
			b.addImport(c)
		}
	}
}

func (b *builder) addImport(n *sitter.Node) {
	var static, wildcard bool
	for i := 0; i < int(n.ChildCount()); i++ {
		switch n.Child(i).Type() {
		case "static":
			static = true
		case "asterisk":
			wildcard = true
		}
	}

	name := firstNamedOf(n, "scoped_identifier", "identifier")
	if name == nil {
		return
	}
	path := compact(b.text(name))

	switch {
	case static && wildcard:
		b.staticWildcards = append(b.staticWildcards, path)
	case static:
		owner, member := tree.SplitQualified(path)
		b.staticImports[member] = owner
	case wildcard:
		b.wildcards = append(b.wildcards, path)
	default:
		_, simple := tree.SplitQualified(path)
		b.imports[simple] = path
	}
}

// resolveType resolves a type node to a known type. Primitive, array and
// type-variable types resolve to nil.
func (b *builder) resolveType(n *sitter.Node) *tree.Type {
	if n == nil {
		return nil
	}

	switch n.Type() {
	case "type_identifier", "identifier":
		return b.resolveTypeName(b.text(n))
	case "generic_type", "annotated_type":
		for i := int(n.NamedChildCount()) - 1; i >= 0; i-- {
			if t := b.resolveType(n.NamedChild(i)); t != nil {
				return t
			}
		}
	case "scoped_type_identifier", "scoped_identifier":
		return b.resolveDotted(stripTypeArgs(compact(b.text(n))))
	}

	return nil
}

func (b *builder) resolveTypeName(simple string) *tree.Type {
	if t, ok := b.local[simple]; ok {
		return t
	}
	if qname, ok := b.imports[simple]; ok {
		return b.lookupOrPlaceholder(qname)
	}
	if b.pkg != "" {
		if t := b.types.Lookup(b.pkg + "." + simple); t != nil {
			return t
		}
	}
	if t := b.types.Lookup("java.lang." + simple); t != nil {
		return t
	}
	for _, pkg := range b.wildcards {
		if t := b.types.Lookup(pkg + "." + simple); t != nil {
			return t
		}
	}

	return nil
}

// resolveDotted resolves a qualified or nested name such as java.util.List
// or Map.Entry.
func (b *builder) resolveDotted(name string) *tree.Type {
	if t := b.types.Lookup(name); t != nil {
		return t
	}
	if t, ok := b.local[name]; ok {
		return t
	}

	first, rest, ok := strings.Cut(name, ".")
	if !ok {
		return b.resolveTypeName(name)
	}
	if outer := b.resolveTypeName(first); outer != nil {
		return b.types.Lookup(outer.QualifiedName() + "." + rest)
	}
	if startsLower(first) {
		return b.lookupOrPlaceholder(name)
	}

	return nil
}

// lookupOrPlaceholder finds qname, defining an opaque type for unknown
// imported classes so their namespace is still known.
func (b *builder) lookupOrPlaceholder(qname string) *tree.Type {
	if t := b.types.Lookup(qname); t != nil {
		return t
	}

	ns, name := tree.SplitQualified(qname)
	if name == "" || startsLower(name) {
		return nil
	}
	t := b.types.Define(ns, name)
	if len(t.Supers) == 0 {
		if root := b.types.Lookup(object); root != nil && root != t {
			t.Supers = []*tree.Type{root}
		}
	}
	return t
}

func (b *builder) withScope(fn func()) {
	b.scope = &varScope{parent: b.scope, vars: make(map[string]*tree.Symbol)}
	defer func() { b.scope = b.scope.parent }()
	fn()
}

func (b *builder) withClass(t *tree.Type, fn func()) {
	b.class = &classFrame{typ: t, outer: b.class}
	defer func() { b.class = b.class.outer }()
	fn()
}

func (b *builder) declareLocal(name string, kind tree.SymbolKind, typ *tree.Type, decl *tree.Node) *tree.Symbol {
	if name == "" || b.scope == nil {
		return nil
	}
	sym := &tree.Symbol{Name: name, Kind: kind, Type: typ, Decl: decl}
	b.scope.vars[name] = sym
	return sym
}

// lookupVar resolves a simple name to a local, parameter or field.
func (b *builder) lookupVar(name string) *tree.Symbol {
	for s := b.scope; s != nil; s = s.parent {
		if sym, ok := s.vars[name]; ok {
			return sym
		}
	}
	for f := b.class; f != nil; f = f.outer {
		if sym := f.typ.LookupField(name); sym != nil {
			return sym
		}
	}
	return nil
}

// lookupMethod resolves an unqualified method name.
func (b *builder) lookupMethod(name string) *tree.Symbol {
	for f := b.class; f != nil; f = f.outer {
		if sym := f.typ.LookupMethod(name); sym != nil {
			return sym
		}
	}
	if owner, ok := b.staticImports[name]; ok {
		if t := b.lookupOrPlaceholder(owner); t != nil {
			if sym := t.LookupMethod(name); sym != nil {
				return sym
			}
		}
	}
	for _, owner := range b.staticWildcards {
		if t := b.types.Lookup(owner); t != nil {
			if sym := t.LookupMethod(name); sym != nil && sym.Static {
				return sym
			}
		}
	}
	return nil
}

func firstNamedOf(n *sitter.Node, types ...string) *sitter.Node {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		for _, typ := range types {
			if c.Type() == typ {
				return c
			}
		}
	}
	return nil
}

func hasModifier(n *sitter.Node, keyword string) bool {
	mods := firstNamedOf(n, "modifiers")
	if mods == nil {
		return false
	}
	for i := 0; i < int(mods.ChildCount()); i++ {
		if mods.Child(i).Type() == keyword {
			return true
		}
	}
	return false
}

// compact removes all whitespace.
func compact(s string) string {
	return strings.Join(strings.Fields(s), "")
}

// stripTypeArgs removes <...> groups from a type name.
func stripTypeArgs(s string) string {
	var sb strings.Builder
	depth := 0
	for _, r := range s {
		switch {
		case r == '<':
			depth++
		case r == '>':
			depth--
		case depth == 0:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func startsLower(s string) bool {
	for _, r := range s {
		return unicode.IsLower(r)
	}
	return false
}
