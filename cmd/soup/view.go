package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/scott-cotton/cli"
	"github.com/signadot/soup/soup"
	"github.com/signadot/soup/soup/config"
	"github.com/signadot/soup/soup/render"
)

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
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
	color.NoColor = !cfg.Color && !isTerminal(cc.Out)
	for i, src := range srcs {
		if err := viewText(cc.Out, sc, src.Text); err != nil {
			return fmt.Errorf("error processing %s: %w", src.Path, err)
		}
		if i < len(srcs)-1 {
			if _, err := io.WriteString(cc.Out, "\n"); err != nil {
				return err
			}
		}
	}
	return nil
}

func viewText(w io.Writer, sc *config.Config, text string) error {
	f, err := soup.Refresh(text, soup.WithPalette(sc.RainbowPalette()))
	if err != nil {
		return err
	}
	out := render.ANSI(f.Lines, f.Tags, render.DelimiterColors(f.Colors))
	_, err = io.WriteString(w, out+"\n")
	return err
}
