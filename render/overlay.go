package render

import (
	"fmt"
	"html"
	"strings"
)

// Entry is one positioned evaluation result.
type Entry struct {
	Top    int
	Height int
	Text   string
	Error  bool
}

// Overlay renders entries as absolutely positioned result boxes.
func Overlay(entries []Entry, opts ...RenderOption) string {
	o := newOpts(opts)
	var b strings.Builder
	for _, e := range entries {
		class := o.class("result")
		if e.Error {
			class += " " + o.class("error")
		}
		fmt.Fprintf(&b, `<div class="%s" style="top: %dpx; height: %dpx;">%s</div>`,
			class, e.Top, e.Height, html.EscapeString(e.Text))
	}
	return b.String()
}
