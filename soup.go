// Package soup annotates Lisp source for an editing surface: it derives
// tags, indentation, rainbow delimiter colours and markup from the text of
// a document in one pass, and renders evaluation results as an overlay.
package soup

import (
	"fmt"

	"github.com/signadot/soup/soup/debug"
	"github.com/signadot/soup/soup/indent"
	"github.com/signadot/soup/soup/ir"
	"github.com/signadot/soup/soup/parse"
	"github.com/signadot/soup/soup/rainbow"
	"github.com/signadot/soup/soup/render"
	"github.com/signadot/soup/soup/repl"
	"github.com/signadot/soup/soup/tag"
)

type RefreshConfig struct {
	Palette     rainbow.Palette
	Rainbow     bool
	ClassPrefix string
}

type RefreshOpt func(*RefreshConfig)

// WithPalette sets the delimiter palette.
func WithPalette(p rainbow.Palette) RefreshOpt {
	return func(c *RefreshConfig) { c.Palette = p }
}

// Rainbow turns delimiter colouring on or off. It is on by default.
func Rainbow(v bool) RefreshOpt {
	return func(c *RefreshConfig) { c.Rainbow = v }
}

func ClassPrefix(p string) RefreshOpt {
	return func(c *RefreshConfig) { c.ClassPrefix = p }
}

// Frame is everything derived from one version of a document.
type Frame struct {
	// Text is the canonically indented text.
	Text  string
	Lines []string
	Nodes []*ir.Node
	Err   *parse.ParseError
	// Tags are the form tags followed by the Indent tags.
	Tags        []tag.Tag
	Colors      rainbow.Colors
	HTML        string
	LineNumbers string
}

// Refresh derives a Frame from text. The error reports tags that do not
// pair up, which never happens for tags built by package tag.
func Refresh(text string, opts ...RefreshOpt) (*Frame, error) {
	cfg := &RefreshConfig{Palette: rainbow.DefaultPalette, Rainbow: true}
	for _, o := range opts {
		o(cfg)
	}
	l := indent.Derive(text)
	if err := tag.Validate(l.Tags); err != nil {
		return nil, fmt.Errorf("refresh: %w", err)
	}
	tags := make([]tag.Tag, 0, len(l.Tags)+len(l.Indents))
	tags = append(tags, l.Tags...)
	tags = append(tags, l.Indents...)
	f := &Frame{
		Text:  l.Text(),
		Lines: l.Lines,
		Nodes: l.Nodes,
		Err:   l.Err,
		Tags:  tags,
	}
	ropts := []render.RenderOption{render.ClassPrefix(cfg.ClassPrefix)}
	if cfg.Rainbow {
		f.Colors = cfg.Palette.Colorize(l.Tags)
		ropts = append(ropts, render.DelimiterColors(f.Colors))
	}
	f.HTML = render.HTML(f.Lines, f.Tags, ropts...)
	f.LineNumbers = render.LineNumbers(len(f.Lines), render.ClassPrefix(cfg.ClassPrefix))
	if debug.Tags() {
		debug.Logf("refresh: %d lines, %d tags, error %v\n", len(f.Lines), len(f.Tags), f.Err)
	}
	return f, nil
}

// Elements returns the evaluable top-level forms of f.
func (f *Frame) Elements() []repl.Element {
	return repl.Elements(f.Lines, f.Nodes)
}

// Overlay lays out results with g and renders them.
func Overlay(results []repl.Result, g repl.Geometry, opts ...render.RenderOption) string {
	ps := repl.Layout(results, g)
	entries := make([]render.Entry, len(results))
	for i, r := range results {
		entries[i] = render.Entry{
			Top:    ps[i].Top,
			Height: ps[i].Height,
			Text:   r.Text(),
			Error:  r.Err != nil,
		}
	}
	return render.Overlay(entries, opts...)
}
