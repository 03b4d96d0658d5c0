package repl

import (
	"strings"

	"github.com/signadot/soup/soup/ir"
)

// Element is a top-level form with its literal source text.
type Element struct {
	Node *ir.Node
	Text string
	Span ir.Span
}

// Evaluable reports whether a top-level node of type t is evaluated:
// collections, symbols and reader macros.
func Evaluable(t ir.Type) bool {
	return t.IsColl() || t == ir.SymbolType || t == ir.MacroType
}

// Elements returns the evaluable top-level forms of nodes, read from
// lines, in source order.
func Elements(lines []string, nodes []*ir.Node) []Element {
	var res []Element
	for _, n := range nodes {
		if !Evaluable(n.Type) || n.Span.IsZero() {
			continue
		}
		res = append(res, Element{
			Node: n,
			Text: SpanText(lines, n.Span),
			Span: n.Span,
		})
	}
	return res
}

// SpanText returns the text of lines covered by span.
func SpanText(lines []string, span ir.Span) string {
	var parts []string
	for l := span.Line; l <= span.EndLine && l <= len(lines); l++ {
		rs := []rune(lines[l-1])
		from, to := 0, len(rs)
		if l == span.Line {
			from = min(span.Column-1, len(rs))
		}
		if l == span.EndLine {
			to = min(max(span.EndColumn-1, from), len(rs))
		}
		parts = append(parts, string(rs[from:to]))
	}
	return strings.Join(parts, "\n")
}
