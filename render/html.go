package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/signadot/soup/soup/ir"
	"github.com/signadot/soup/soup/tag"
)

// Class returns the class of the span wrapping a form of type t.
func Class(t ir.Type) string {
	switch t {
	case ir.SymbolType:
		return "symbol"
	case ir.ListType:
		return "collection list"
	case ir.VectorType:
		return "collection vector"
	case ir.MapType:
		return "collection map"
	case ir.SetType:
		return "collection set"
	case ir.NumberType:
		return "number"
	case ir.StringType:
		return "string"
	case ir.KeywordType:
		return "keyword"
	case ir.NilType:
		return "nil"
	case ir.BoolType:
		return "boolean"
	default:
		return "other"
	}
}

func (o *renderOpts) class(c string) string {
	if o.classPrefix == "" {
		return c
	}
	parts := strings.Fields(c)
	for i := range parts {
		parts[i] = o.classPrefix + parts[i]
	}
	return strings.Join(parts, " ")
}

// HTML renders lines with tags, which should include the Indent tags of
// the lines. Lines are joined with newlines.
func HTML(lines []string, tags []tag.Tag, opts ...RenderOption) string {
	o := newOpts(opts)
	var b strings.Builder
	walk(lines, tags, func(seg *segment) {
		switch {
		case seg == nil:
			b.WriteByte('\n')
		case !seg.isTag:
			b.WriteString(html.EscapeString(seg.text))
		default:
			o.writeTag(&b, seg.tag)
		}
	})
	return b.String()
}

func (o *renderOpts) writeTag(b *strings.Builder, t tag.Tag) {
	switch t.Kind {
	case tag.Indent:
		fmt.Fprintf(b, `<span class="%s">`, o.class("indent"))
		b.WriteString(strings.Repeat("&nbsp;", t.Level))
		b.WriteString("</span>")
	case tag.Delimiter:
		fmt.Fprintf(b, `<span class="%s"`, o.class("delimiter"))
		if c, ok := o.colors.Get(t.Line, t.Column); ok {
			fmt.Fprintf(b, ` style="color: %s;"`, html.EscapeString(c))
		}
		b.WriteString(">")
	case tag.Begin:
		typ := ir.SymbolType
		if t.Node != nil {
			typ = t.Node.Type
		}
		fmt.Fprintf(b, `<span class="%s">`, o.class(Class(typ)))
	case tag.End, tag.DelimiterEnd:
		b.WriteString("</span>")
	case tag.Error:
		fmt.Fprintf(b, `<span class="%s" data-message="%s"></span>`, o.class("error"), html.EscapeString(t.Message))
	}
}

// LineNumbers renders the labels 1..n.
func LineNumbers(n int, opts ...RenderOption) string {
	o := newOpts(opts)
	var b strings.Builder
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&b, `<span class="%s">%d</span>`, o.class("line-number"), i)
		if i < n {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
