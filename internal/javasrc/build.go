package javasrc

import (
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/mpyw/concmut/internal/tree"
)

var typeDecls = map[string]bool{
	"class_declaration":           true,
	"interface_declaration":       true,
	"enum_declaration":            true,
	"record_declaration":          true,
	"annotation_type_declaration": true,
}

// skipped node types carry no expressions the detectors look at.
var skipped = map[string]bool{
	"modifiers":              true,
	"marker_annotation":      true,
	"annotation":             true,
	"type_identifier":        true,
	"generic_type":           true,
	"scoped_type_identifier": true,
	"array_type":             true,
	"integral_type":          true,
	"floating_point_type":    true,
	"boolean_type":           true,
	"void_type":              true,
	"type_arguments":         true,
	"type_parameters":        true,
	"type_list":              true,
	"annotated_type":         true,
	"dimensions":             true,
	"superclass":             true,
	"super_interfaces":       true,
	"extends_interfaces":     true,
	"permits":                true,
	"throws":                 true,
	"package_declaration":    true,
	"import_declaration":     true,
	"module_declaration":     true,
	"formal_parameters":      true,
	"line_comment":           true,
	"block_comment":          true,
	"comment":                true,
}

// transparent node types are replaced by their children.
var transparent = map[string]bool{
	"expression_statement":     true,
	"parenthesized_expression": true,
	"argument_list":            true,
	"class_body":               true,
	"interface_body":           true,
	"enum_body":                true,
	"enum_body_declarations":   true,
	"annotation_type_body":     true,
	"ERROR":                    true,
}

// scoped statements introduce variables visible only inside them.
var scoped = map[string]bool{
	"for_statement":                true,
	"try_with_resources_statement": true,
	"switch_block_statement_group": true,
	"switch_rule":                  true,
	"catch_clause":                 true,
}

var literals = map[string]bool{
	"decimal_integer_literal":        true,
	"hex_integer_literal":            true,
	"octal_integer_literal":          true,
	"binary_integer_literal":         true,
	"decimal_floating_point_literal": true,
	"hex_floating_point_literal":     true,
	"character_literal":              true,
	"string_literal":                 true,
	"text_block":                     true,
	"true":                           true,
	"false":                          true,
	"null_literal":                   true,
}

func (b *builder) build(root *sitter.Node) *tree.Unit {
	b.unit = &tree.Unit{
		File:   b.file,
		Source: []byte(b.src),
		Types:  b.types,
	}
	b.scan(root)
	b.header(root)
	b.unit.Package = b.pkg

	b.declareTypes(root, nil)
	for _, decl := range b.order {
		b.declareMembers(decl, b.decls[decl])
	}

	b.unit.Root = b.newNode(tree.KindUnit, root)
	b.withScope(func() {
		b.visitChildren(root, b.unit.Root)
	})

	return b.unit
}

// declareTypes defines every named type declared in the file, including
// nested and local ones, before any member is resolved.
func (b *builder) declareTypes(n *sitter.Node, outer *tree.Type) {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		next := outer
		if typeDecls[c.Type()] {
			if name := c.ChildByFieldName("name"); name != nil {
				simple := b.text(name)
				full := simple
				if outer != nil {
					full = outer.Name + "." + simple
				}
				t := b.types.Define(b.pkg, full)
				t.Interface = c.Type() == "interface_declaration" || c.Type() == "annotation_type_declaration"
				b.decls[c] = t
				b.order = append(b.order, c)
				if _, ok := b.local[simple]; !ok {
					b.local[simple] = t
				}
				b.local[full] = t
				next = t
			}
		}
		b.declareTypes(c, next)
	}
}

func (b *builder) declareMembers(decl *sitter.Node, t *tree.Type) {
	for i := 0; i < int(decl.NamedChildCount()); i++ {
		c := decl.NamedChild(i)
		switch c.Type() {
		case "superclass":
			b.addSupers(t, c)
		case "super_interfaces", "extends_interfaces":
			if list := firstNamedOf(c, "type_list"); list != nil {
				b.addSupers(t, list)
			}
		}
	}
	if len(t.Supers) == 0 {
		if root := b.types.Lookup(object); root != nil {
			t.Supers = []*tree.Type{root}
		}
	}

	if decl.Type() == "record_declaration" {
		if params := decl.ChildByFieldName("parameters"); params != nil {
			for i := 0; i < int(params.NamedChildCount()); i++ {
				p := params.NamedChild(i)
				name := b.text(p.ChildByFieldName("name"))
				typ := b.resolveType(p.ChildByFieldName("type"))
				t.DeclareField(name, false, typ)
				t.DeclareMethod(name, false, typ, tree.ReturnsDeclared)
			}
		}
	}

	b.declareBody(decl.ChildByFieldName("body"), t)
}

func (b *builder) addSupers(t *tree.Type, list *sitter.Node) {
	for i := 0; i < int(list.NamedChildCount()); i++ {
		if st := b.resolveType(list.NamedChild(i)); st != nil && st != t {
			t.Supers = append(t.Supers, st)
		}
	}
}

// declareBody declares the fields and methods of a class body on t.
func (b *builder) declareBody(body *sitter.Node, t *tree.Type) {
	if body == nil {
		return
	}

	for i := 0; i < int(body.NamedChildCount()); i++ {
		c := body.NamedChild(i)
		switch c.Type() {
		case "field_declaration", "constant_declaration":
			static := t.Interface || hasModifier(c, "static")
			typ := b.resolveType(c.ChildByFieldName("type"))
			for _, d := range declarators(c) {
				t.DeclareField(b.text(d.ChildByFieldName("name")), static, typ)
			}
		case "method_declaration":
			name := b.text(c.ChildByFieldName("name"))
			t.DeclareMethod(name, hasModifier(c, "static"), b.resolveType(c.ChildByFieldName("type")), tree.ReturnsDeclared)
		case "enum_constant":
			t.DeclareField(b.text(c.ChildByFieldName("name")), true, t)
		case "enum_body_declarations":
			b.declareBody(c, t)
		}
	}
}

func declarators(n *sitter.Node) []*sitter.Node {
	var out []*sitter.Node
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if c := n.NamedChild(i); c.Type() == "variable_declarator" {
			out = append(out, c)
		}
	}
	return out
}

func (b *builder) newNode(kind tree.Kind, n *sitter.Node) *tree.Node {
	node := tree.NewNode(kind, "", b.pos(n))
	node.Text = b.text(n)
	return node
}

func (b *builder) visitChildren(n *sitter.Node, parent *tree.Node) *tree.Node {
	var last *tree.Node
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if r := b.visit(n.NamedChild(i), parent); r != nil {
			last = r
		}
	}
	return last
}

// visit converts n, appends the result to parent and returns it. Nodes
// that produce several siblings return the last one.
func (b *builder) visit(n *sitter.Node, parent *tree.Node) *tree.Node {
	if n == nil {
		return nil
	}

	typ := n.Type()
	switch {
	case skipped[typ]:
		return nil
	case transparent[typ]:
		return b.visitChildren(n, parent)
	case typeDecls[typ]:
		return b.classDecl(n, parent)
	case literals[typ]:
		lit := parent.Append(b.newNode(tree.KindLiteral, n))
		if typ == "string_literal" || typ == "text_block" {
			lit.Type = b.types.Lookup("java.lang.String")
		}
		return lit
	}

	switch typ {
	case "field_declaration", "constant_declaration":
		return b.fieldDecl(n, parent)
	case "local_variable_declaration", "resource":
		return b.localDecl(n, parent)
	case "method_declaration", "constructor_declaration", "compact_constructor_declaration":
		return b.methodDecl(n, parent)
	case "block", "constructor_body":
		blk := parent.Append(b.newNode(tree.KindBlock, n))
		b.withScope(func() { b.visitChildren(n, blk) })
		return blk
	case "static_initializer":
		blk := parent.Append(b.newNode(tree.KindBlock, n))
		blk.Static = true
		b.visitChildren(n, blk)
		return blk
	case "synchronized_statement":
		sync := parent.Append(b.newNode(tree.KindSynchronized, n))
		b.visitChildren(n, sync)
		return sync
	case "enhanced_for_statement":
		return b.enhancedFor(n, parent)
	case "catch_formal_parameter":
		b.declareLocal(b.text(n.ChildByFieldName("name")), tree.SymLocal, nil, nil)
		return nil
	case "lambda_expression":
		return b.lambda(n, parent)
	case "method_invocation":
		return b.call(n, parent)
	case "method_reference":
		return b.memberRef(n, parent)
	case "object_creation_expression":
		return b.newExpr(n, parent)
	case "field_access":
		return b.fieldAccess(n, parent)
	case "identifier":
		return b.ident(n, parent)
	case "this":
		this := parent.Append(b.newNode(tree.KindThis, n))
		if b.class != nil {
			this.Type = b.class.typ
		}
		return this
	case "super":
		sup := parent.Append(b.newNode(tree.KindExpr, n))
		if b.class != nil && len(b.class.typ.Supers) > 0 {
			sup.Type = b.class.typ.Supers[0]
		}
		return sup
	case "cast_expression":
		cast := parent.Append(b.newNode(tree.KindExpr, n))
		b.visit(n.ChildByFieldName("value"), cast)
		cast.Type = b.resolveType(n.ChildByFieldName("type"))
		return cast
	}

	kind := tree.KindExpr
	if isStatement(typ) {
		kind = tree.KindStmt
	}
	g := parent.Append(b.newNode(kind, n))
	if scoped[typ] {
		b.withScope(func() { b.visitChildren(n, g) })
	} else {
		b.visitChildren(n, g)
	}
	if typ == "ternary_expression" {
		if cons := n.ChildByFieldName("consequence"); cons != nil {
			for _, c := range g.Children() {
				if c.Pos.Offset == int(cons.StartByte()) {
					g.Type = c.Type
				}
			}
		}
	}
	return g
}

func isStatement(typ string) bool {
	if strings.HasSuffix(typ, "_statement") {
		return true
	}
	switch typ {
	case "switch_block", "switch_block_statement_group", "switch_rule", "switch_label",
		"catch_clause", "finally_clause", "resource_specification",
		"explicit_constructor_invocation", "enum_constant", "labeled_statement":
		return true
	}
	return false
}

func (b *builder) classDecl(n *sitter.Node, parent *tree.Node) *tree.Node {
	t := b.decls[n]
	cls := parent.Append(b.newNode(tree.KindClass, n))
	cls.Name = b.text(n.ChildByFieldName("name"))
	cls.Type = t
	if t == nil {
		return cls
	}

	b.withClass(t, func() {
		b.withScope(func() {
			b.visit(n.ChildByFieldName("body"), cls)
		})
	})
	return cls
}

func (b *builder) fieldDecl(n *sitter.Node, parent *tree.Node) *tree.Node {
	static := hasModifier(n, "static") || (b.class != nil && b.class.typ.Interface)
	typ := b.resolveType(n.ChildByFieldName("type"))

	var last *tree.Node
	for _, d := range declarators(n) {
		v := parent.Append(b.newNode(tree.KindVariable, d))
		v.Name = b.text(d.ChildByFieldName("name"))
		v.Static = static
		v.Type = typ
		if b.class != nil {
			if sym := b.class.typ.LookupField(v.Name); sym != nil && sym.Owner == b.class.typ {
				sym.Decl = v
				v.Sym = sym
			}
		}
		v.Init = b.visit(d.ChildByFieldName("value"), v)
		last = v
	}
	return last
}

// localDecl handles local variables and try-with-resources resources.
func (b *builder) localDecl(n *sitter.Node, parent *tree.Node) *tree.Node {
	declared := n.ChildByFieldName("type")
	inferred := declared == nil || b.text(declared) == "var"
	typ := b.resolveType(declared)

	if n.Type() == "resource" {
		if n.ChildByFieldName("name") == nil {
			return b.visitChildren(n, parent)
		}
		return b.declareVariable(n, n, parent, typ, inferred)
	}

	var last *tree.Node
	for _, d := range declarators(n) {
		last = b.declareVariable(d, d, parent, typ, inferred)
	}
	return last
}

func (b *builder) declareVariable(at, decl *sitter.Node, parent *tree.Node, typ *tree.Type, inferred bool) *tree.Node {
	v := parent.Append(b.newNode(tree.KindVariable, at))
	v.Name = b.text(decl.ChildByFieldName("name"))
	v.Init = b.visit(decl.ChildByFieldName("value"), v)
	if inferred && v.Init != nil {
		typ = v.Init.Type
	}
	v.Type = typ
	v.Sym = b.declareLocal(v.Name, tree.SymLocal, typ, v)
	return v
}

func (b *builder) methodDecl(n *sitter.Node, parent *tree.Node) *tree.Node {
	m := parent.Append(b.newNode(tree.KindMethod, n))
	m.Name = b.text(n.ChildByFieldName("name"))
	m.Static = hasModifier(n, "static")
	if b.class != nil && n.Type() == "method_declaration" {
		if sym := b.class.typ.LookupMethod(m.Name); sym != nil && sym.Owner == b.class.typ {
			m.Sym = sym
			if sym.Decl == nil {
				sym.Decl = m
			}
		}
	}

	b.withScope(func() {
		b.params(n.ChildByFieldName("parameters"))
		m.Body = b.visit(n.ChildByFieldName("body"), m)
	})
	return m
}

func (b *builder) params(list *sitter.Node) {
	if list == nil {
		return
	}

	for i := 0; i < int(list.NamedChildCount()); i++ {
		p := list.NamedChild(i)
		switch p.Type() {
		case "formal_parameter":
			b.declareLocal(b.text(p.ChildByFieldName("name")), tree.SymParam, b.resolveType(p.ChildByFieldName("type")), nil)
		case "spread_parameter":
			if d := firstNamedOf(p, "variable_declarator"); d != nil {
				b.declareLocal(b.text(d.ChildByFieldName("name")), tree.SymParam, nil, nil)
			}
		case "identifier":
			b.declareLocal(b.text(p), tree.SymParam, nil, nil)
		}
	}
}

func (b *builder) enhancedFor(n *sitter.Node, parent *tree.Node) *tree.Node {
	st := parent.Append(b.newNode(tree.KindStmt, n))
	b.visit(n.ChildByFieldName("value"), st)

	b.withScope(func() {
		if name := n.ChildByFieldName("name"); name != nil {
			v := st.Append(b.newNode(tree.KindVariable, name))
			v.Name = b.text(name)
			v.Type = b.resolveType(n.ChildByFieldName("type"))
			v.Sym = b.declareLocal(v.Name, tree.SymLocal, v.Type, v)
		}
		b.visit(n.ChildByFieldName("body"), st)
	})
	return st
}

func (b *builder) lambda(n *sitter.Node, parent *tree.Node) *tree.Node {
	l := parent.Append(b.newNode(tree.KindLambda, n))

	b.withScope(func() {
		if p := n.ChildByFieldName("parameters"); p != nil {
			switch p.Type() {
			case "identifier":
				b.declareLocal(b.text(p), tree.SymParam, nil, nil)
			default:
				b.params(p)
			}
		}
		l.Body = b.visit(n.ChildByFieldName("body"), l)
	})
	return l
}

func (b *builder) call(n *sitter.Node, parent *tree.Node) *tree.Node {
	c := parent.Append(b.newNode(tree.KindCall, n))
	c.Name = b.text(n.ChildByFieldName("name"))

	if obj := n.ChildByFieldName("object"); obj != nil {
		c.Receiver = b.visit(obj, c)
	}
	c.Args = b.args(n.ChildByFieldName("arguments"), c)

	var sym *tree.Symbol
	var recvType *tree.Type
	if c.Receiver != nil {
		recvType = c.Receiver.Type
		if recvType != nil {
			sym = recvType.LookupMethod(c.Name)
		}
	} else {
		sym = b.lookupMethod(c.Name)
	}

	c.Sym = sym
	switch {
	case sym != nil:
		c.Static = sym.Static
		c.Type = sym.Type
		if sym.Returns == tree.ReturnsSelf {
			c.Type = recvType
		}
	case c.Receiver != nil && c.Receiver.Kind == tree.KindTypeName:
		c.Static = true
	}
	return c
}

func (b *builder) args(list *sitter.Node, parent *tree.Node) []*tree.Node {
	if list == nil {
		return nil
	}

	var out []*tree.Node
	for i := 0; i < int(list.NamedChildCount()); i++ {
		if a := b.visit(list.NamedChild(i), parent); a != nil {
			out = append(out, a)
		}
	}
	return out
}

func (b *builder) memberRef(n *sitter.Node, parent *tree.Node) *tree.Node {
	r := parent.Append(b.newNode(tree.KindMemberRef, n))
	if n.NamedChildCount() == 0 {
		return r
	}

	qualifier := n.NamedChild(0)
	if skipped[qualifier.Type()] {
		tn := r.Append(b.newNode(tree.KindTypeName, qualifier))
		tn.Type = b.resolveType(qualifier)
		r.Receiver = tn
	} else {
		r.Receiver = b.visit(qualifier, r)
	}

	if last := n.Child(int(n.ChildCount()) - 1); last != nil {
		if last.Type() == "new" {
			r.Name = "new"
		} else if n.NamedChildCount() > 1 {
			r.Name = b.text(n.NamedChild(int(n.NamedChildCount()) - 1))
		}
	}

	if r.Receiver != nil && r.Receiver.Type != nil && r.Name != "new" {
		r.Sym = r.Receiver.Type.LookupMethod(r.Name)
		if r.Sym != nil {
			r.Static = r.Sym.Static
		}
	}
	return r
}

func (b *builder) newExpr(n *sitter.Node, parent *tree.Node) *tree.Node {
	nw := parent.Append(b.newNode(tree.KindNew, n))
	typNode := n.ChildByFieldName("type")
	nw.Name = compact(b.text(typNode))
	nw.Type = b.resolveType(typNode)
	nw.Args = b.args(n.ChildByFieldName("arguments"), nw)

	if body := firstNamedOf(n, "class_body"); body != nil {
		b.anon++
		outer := "anonymous"
		if b.class != nil {
			outer = b.class.typ.Name
		}
		anon := &tree.Type{Namespace: b.pkg, Name: fmt.Sprintf("%s$%d", outer, b.anon)}
		if nw.Type != nil {
			anon.Supers = []*tree.Type{nw.Type}
		} else if root := b.types.Lookup(object); root != nil {
			anon.Supers = []*tree.Type{root}
		}
		b.declareBody(body, anon)

		cls := nw.Append(b.newNode(tree.KindClass, body))
		cls.Type = anon
		b.withClass(anon, func() {
			b.withScope(func() { b.visitChildren(body, cls) })
		})
	}
	return nw
}

func (b *builder) ident(n *sitter.Node, parent *tree.Node) *tree.Node {
	id := parent.Append(b.newNode(tree.KindIdent, n))
	id.Name = b.text(n)

	if sym := b.lookupVar(id.Name); sym != nil {
		id.Sym = sym
		id.Type = sym.Type
		return id
	}
	if t := b.resolveTypeName(id.Name); t != nil {
		id.Kind = tree.KindTypeName
		id.Type = t
	}
	return id
}

func (b *builder) fieldAccess(n *sitter.Node, parent *tree.Node) *tree.Node {
	if t := b.qualifiedType(n); t != nil {
		tn := parent.Append(b.newNode(tree.KindTypeName, n))
		tn.Name = t.Name
		tn.Type = t
		return tn
	}

	fa := parent.Append(b.newNode(tree.KindFieldAccess, n))
	fa.Name = b.text(n.ChildByFieldName("field"))
	fa.Receiver = b.visit(n.ChildByFieldName("object"), fa)
	if fa.Receiver != nil && fa.Receiver.Type != nil {
		if sym := fa.Receiver.Type.LookupField(fa.Name); sym != nil {
			fa.Sym = sym
			fa.Type = sym.Type
		}
	}
	return fa
}

// qualifiedType resolves a.b.C written as an expression to a type. The
// leading identifier must not name a variable.
func (b *builder) qualifiedType(n *sitter.Node) *tree.Type {
	parts := b.dotted(n)
	if len(parts) < 2 || b.lookupVar(parts[0]) != nil {
		return nil
	}

	name := strings.Join(parts, ".")
	if t := b.types.Lookup(name); t != nil {
		return t
	}
	if t, ok := b.local[name]; ok {
		return t
	}
	if outer := b.resolveTypeName(parts[0]); outer != nil {
		return b.types.Lookup(outer.QualifiedName() + "." + strings.Join(parts[1:], "."))
	}
	return nil
}

func (b *builder) dotted(n *sitter.Node) []string {
	switch n.Type() {
	case "identifier":
		return []string{b.text(n)}
	case "field_access":
		obj, field := n.ChildByFieldName("object"), n.ChildByFieldName("field")
		if obj == nil || field == nil {
			return nil
		}
		head := b.dotted(obj)
		if head == nil {
			return nil
		}
		return append(head, b.text(field))
	}
	return nil
}
