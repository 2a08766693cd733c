package tree

import (
	"fmt"
	"strings"
)

// Kind identifies the syntactic category of a Node.
type Kind int

// Node kinds.
const (
	KindInvalid Kind = iota
	KindUnit
	KindClass
	KindMethod
	KindBlock
	KindVariable
	KindCall
	KindMemberRef
	KindLambda
	KindNew
	KindSynchronized
	KindIdent
	KindFieldAccess
	KindThis
	KindTypeName
	KindLiteral
	KindExpr
	KindStmt
)

var kindNames = [...]string{
	KindInvalid:      "Invalid",
	KindUnit:         "Unit",
	KindClass:        "Class",
	KindMethod:       "Method",
	KindBlock:        "Block",
	KindVariable:     "Variable",
	KindCall:         "Call",
	KindMemberRef:    "MemberRef",
	KindLambda:       "Lambda",
	KindNew:          "New",
	KindSynchronized: "Synchronized",
	KindIdent:        "Ident",
	KindFieldAccess:  "FieldAccess",
	KindThis:         "This",
	KindTypeName:     "TypeName",
	KindLiteral:      "Literal",
	KindExpr:         "Expr",
	KindStmt:         "Stmt",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// IsExpression reports whether nodes of this kind are expressions.
func (k Kind) IsExpression() bool {
	switch k {
	case KindCall, KindMemberRef, KindLambda, KindNew, KindIdent,
		KindFieldAccess, KindThis, KindTypeName, KindLiteral, KindExpr:
		return true
	default:
		return false
	}
}

// Pos is a source position. Line and Column are 1-based.
type Pos struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
	Offset int    `json:"offset"`
}

// IsValid reports whether the position carries a line number.
func (p Pos) IsValid() bool {
	return p.Line > 0
}

func (p Pos) String() string {
	if !p.IsValid() {
		return "-"
	}
	if p.File == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// Node is a syntax element. See the package documentation for which role
// fields are populated per Kind.
type Node struct {
	Kind Kind
	// Name is the identifier carried by the node (method, variable, field, ...).
	Name string
	// Text is the source text of the node.
	Text string
	Pos  Pos
	// Static marks static initializer blocks, static variables and
	// statically qualified calls.
	Static bool

	Receiver *Node
	Args     []*Node
	Body     *Node
	Init     *Node

	// Sym and Type are filled in by the front end when resolvable.
	Sym  *Symbol
	Type *Type

	parent   *Node
	children []*Node
}

// NewNode creates a detached node.
func NewNode(kind Kind, name string, pos Pos) *Node {
	return &Node{Kind: kind, Name: name, Pos: pos}
}

// Append attaches child as the last child of n and returns child.
// A nil child is ignored.
func (n *Node) Append(child *Node) *Node {
	if child == nil {
		return nil
	}
	child.parent = n
	n.children = append(n.children, child)
	return child
}

// Parent returns the parent node, or nil for the root.
func (n *Node) Parent() *Node {
	if n == nil {
		return nil
	}
	return n.parent
}

// Children returns the child nodes in source order.
func (n *Node) Children() []*Node {
	if n == nil {
		return nil
	}
	return n.children
}

// Ancestors returns the ancestors of n, innermost first.
func (n *Node) Ancestors() []*Node {
	var path []*Node
	for p := n.Parent(); p != nil; p = p.parent {
		path = append(path, p)
	}
	return path
}

// String returns a short description for debugging.
func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	text := n.Text
	if len(text) > 40 {
		text = text[:37] + "..."
	}
	return fmt.Sprintf("%s(%s) at %s", n.Kind, strings.Join(strings.Fields(text), " "), n.Pos)
}

// Walk traverses the subtree rooted at n in depth-first preorder. The stack
// holds the ancestors of the visited node, outermost first. If fn returns
// false the children of the node are skipped.
func Walk(n *Node, fn func(n *Node, stack []*Node) bool) {
	if n == nil {
		return
	}
	walk(n, nil, fn)
}

func walk(n *Node, stack []*Node, fn func(*Node, []*Node) bool) {
	if !fn(n, stack) {
		return
	}
	stack = append(stack, n)
	for _, c := range n.children {
		walk(c, stack, fn)
	}
}
