package render

import (
	"strings"

	"github.com/fatih/color"
	"github.com/signadot/soup/soup/ir"
	"github.com/signadot/soup/soup/rainbow"
	"github.com/signadot/soup/soup/tag"
)

type Colors struct {
	Default   func(string, ...any) string
	Delimiter func(string, ...any) string
	Error     func(string, ...any) string
	Map       map[ir.Type]func(string, ...any) string
	named     map[string]func(string, ...any) string
}

func NewColors() *Colors {
	colors := &Colors{
		Default:   colorDefault,
		Delimiter: color.RGB(255, 0, 196).SprintfFunc(),
		Error:     color.New(color.FgRed, color.Bold).SprintfFunc(),
		Map:       map[ir.Type]func(string, ...any) string{},
		named:     map[string]func(string, ...any) string{},
	}
	colors.Map[ir.NumberType] = color.RGB(128, 216, 236).SprintfFunc()
	colors.Map[ir.NilType] = color.RGB(168, 0, 196).SprintfFunc()
	colors.Map[ir.BoolType] = color.CyanString
	colors.Map[ir.StringType] = color.RGB(8, 196, 16).SprintfFunc()
	colors.Map[ir.RegexType] = color.RGB(198, 198, 46).SprintfFunc()
	colors.Map[ir.CharType] = color.RGB(88, 158, 86).SprintfFunc()
	colors.Map[ir.KeywordType] = color.RGB(196, 96, 16).SprintfFunc()
	colors.Map[ir.SymbolType] = color.RGB(128, 168, 196).SprintfFunc()
	for k, f := range colors.Map {
		colors.Map[k] = escapeFunc(f)
	}
	colors.Delimiter = escapeFunc(colors.Delimiter)
	colors.Error = escapeFunc(colors.Error)
	return colors
}

func escapeFunc(f func(string, ...any) string) func(string, ...any) string {
	return func(v string, _ ...any) string {
		return f(strings.Replace(v, "%", "%%", -1))
	}
}

func colorDefault(v string, _ ...any) string { return v }

func (c *Colors) Get(t ir.Type) func(string, ...any) string {
	f := c.Map[t]
	if f == nil {
		return c.Default
	}
	return f
}

// Named returns the colour function for a rainbow colour name, falling
// back to the delimiter colour.
func (c *Colors) Named(name string) func(string, ...any) string {
	if f, ok := c.named[name]; ok {
		return f
	}
	r, g, b, ok := rainbow.RGB(name)
	if !ok {
		return c.Delimiter
	}
	f := escapeFunc(color.RGB(r, g, b).SprintfFunc())
	c.named[name] = f
	return f
}

// ANSI renders lines with tags for a terminal. Indentation becomes
// spaces and each read error is shown inline at its position.
func ANSI(lines []string, tags []tag.Tag, opts ...RenderOption) string {
	o := newOpts(opts)
	c := o.ansi
	if c == nil {
		c = NewColors()
	}
	var (
		b     strings.Builder
		stack []func(string, ...any) string
	)
	top := func() func(string, ...any) string {
		if len(stack) == 0 {
			return c.Default
		}
		return stack[len(stack)-1]
	}
	pop := func() {
		if len(stack) > 0 {
			stack = stack[:len(stack)-1]
		}
	}
	walk(lines, tags, func(seg *segment) {
		switch {
		case seg == nil:
			b.WriteByte('\n')
		case !seg.isTag:
			b.WriteString(top()(seg.text))
		default:
			t := seg.tag
			switch t.Kind {
			case tag.Indent:
				b.WriteString(strings.Repeat(" ", t.Level))
			case tag.Begin:
				f := c.Default
				if t.Node != nil && !t.Node.Type.IsColl() {
					f = c.Get(t.Node.Type)
				}
				stack = append(stack, f)
			case tag.Delimiter:
				f := c.Delimiter
				if name, ok := o.colors.Get(t.Line, t.Column); ok {
					f = c.Named(name)
				}
				stack = append(stack, f)
			case tag.End, tag.DelimiterEnd:
				pop()
			case tag.Error:
				b.WriteString(c.Error("[error: " + t.Message + "]"))
			}
		}
	})
	return b.String()
}
