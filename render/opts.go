package render

import "github.com/signadot/soup/soup/rainbow"

type renderOpts struct {
	colors      rainbow.Colors
	classPrefix string
	ansi        *Colors
}

type RenderOption func(*renderOpts)

// DelimiterColors colours delimiters found in c.
func DelimiterColors(c rainbow.Colors) RenderOption {
	return func(o *renderOpts) { o.colors = c }
}

// ClassPrefix prefixes every generated class name.
func ClassPrefix(p string) RenderOption {
	return func(o *renderOpts) { o.classPrefix = p }
}

// ANSIColors sets the terminal colours used by ANSI.
func ANSIColors(c *Colors) RenderOption {
	return func(o *renderOpts) { o.ansi = c }
}

func newOpts(opts []RenderOption) *renderOpts {
	res := &renderOpts{}
	for _, f := range opts {
		f(res)
	}
	return res
}
