package javasrc

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"

	"github.com/mpyw/concmut/internal/tree"
)

// Parse parses one Java compilation unit and resolves it against the JDK
// model. Syntax errors do not fail the parse: the unit is built best-effort
// and Unit.SyntaxErrors counts the broken regions.
func Parse(ctx context.Context, filename string, src []byte) (*tree.Unit, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(java.GetLanguage())

	st, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}

	b := newBuilder(filename, src, tree.NewUniverse(JDK()))
	return b.build(st.RootNode()), nil
}

// scan collects comments and counts syntax errors in the whole tree.
func (b *builder) scan(n *sitter.Node) {
	if n == nil {
		return
	}

	switch {
	case isComment(n.Type()):
		b.unit.Comments = append(b.unit.Comments, tree.Comment{
			Text: b.text(n),
			Pos:  b.pos(n),
		})
		return
	case n.Type() == "ERROR" || n.IsMissing():
		b.unit.SyntaxErrors++
	}

	for i := 0; i < int(n.ChildCount()); i++ {
		b.scan(n.Child(i))
	}
}

func isComment(typ string) bool {
	return typ == "line_comment" || typ == "block_comment" || typ == "comment"
}
