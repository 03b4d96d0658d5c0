package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/signadot/soup/soup/eval"
	"github.com/signadot/soup/soup/ir"
	"go.lsp.dev/protocol"
)

func (s *Server) Hover(ctx context.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil {
		return nil, nil
	}
	node := doc.nodeAt(params.Position)
	if node == nil {
		return nil, nil
	}
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.Markdown,
			Value: buildHoverText(node),
		},
	}, nil
}

func buildHoverText(node *ir.Node) string {
	parts := []string{
		fmt.Sprintf("**Form:** %s", describe(node)),
		fmt.Sprintf("**Depth:** %d", node.Depth()),
	}
	if info := valueInfo(node); info != "" {
		parts = append(parts, fmt.Sprintf("**Value:** %s", info))
	}
	return strings.Join(parts, "\n\n")
}

// describe names the kind of node, with the opening delimiter for
// collections.
func describe(node *ir.Node) string {
	if node.Type.IsColl() {
		return fmt.Sprintf("%s `%s`", strings.ToLower(node.Type.String()), node.Open)
	}
	return strings.ToLower(node.Type.String())
}

func valueInfo(node *ir.Node) string {
	switch node.Type {
	case ir.ListType, ir.VectorType, ir.SetType:
		return fmt.Sprintf("%d elements", len(node.Values))
	case ir.MapType:
		return fmt.Sprintf("%d entries", len(node.Values))
	case ir.SymbolType:
		if isBuiltin(node.String) {
			return fmt.Sprintf("`%s` (builtin)", node.String)
		}
	}
	v, err := eval.Data(node)
	if err != nil {
		return ""
	}
	val := eval.Print(v)
	if len(val) > 50 {
		val = val[:50] + "..."
	}
	return fmt.Sprintf("`%s`", val)
}
