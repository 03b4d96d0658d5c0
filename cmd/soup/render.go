package main

import (
	"context"
	"fmt"
	"io"

	"github.com/scott-cotton/cli"
	"github.com/signadot/soup/soup"
	"github.com/signadot/soup/soup/config"
	"github.com/signadot/soup/soup/eval"
	"github.com/signadot/soup/soup/render"
	"github.com/signadot/soup/soup/repl"
)

func renderCmd(cfg *RenderConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Render.Parse(cc, args)
	if err != nil {
		return err
	}
	sc, err := cfg.Soup()
	if err != nil {
		return err
	}
	srcs, err := readSources(cc, args)
	if err != nil {
		return err
	}
	for _, src := range srcs {
		if err := renderPage(context.Background(), cc.Out, sc, src.Text, cfg.Colors, cfg.Eval); err != nil {
			return fmt.Errorf("error rendering %s: %w", src.Path, err)
		}
	}
	return nil
}

// renderPage writes one document as an html fragment: line numbers, the
// annotated source and, with withEval, the result overlay.
func renderPage(ctx context.Context, w io.Writer, sc *config.Config, text string, colors, withEval bool) error {
	f, err := soup.Refresh(text,
		soup.WithPalette(sc.RainbowPalette()),
		soup.Rainbow(colors),
		soup.ClassPrefix(sc.ClassPrefix))
	if err != nil {
		return err
	}
	p := sc.ClassPrefix
	overlay := ""
	if withEval {
		env := eval.NewEnv(eval.StartIn(sc.Namespace))
		results, err := repl.Run(ctx, f.Elements(), eval.Interpreter{}, env)
		if err != nil {
			return err
		}
		g := repl.LineGeometry{LineHeight: sc.LineHeight, Top: sc.ContainerTop}
		overlay = soup.Overlay(results, g, render.ClassPrefix(p))
	}
	_, err = fmt.Fprintf(w,
		"<div class=\"%ssoup\">\n<pre class=\"%slines\">%s</pre>\n<pre class=\"%scode\">%s</pre>\n<div class=\"%soverlay\">%s</div>\n</div>\n",
		p, p, f.LineNumbers, p, f.HTML, p, overlay)
	return err
}
