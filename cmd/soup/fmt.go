package main

import (
	"fmt"
	"io"
	"os"

	"github.com/scott-cotton/cli"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/signadot/soup/soup/indent"
)

func fmtCmd(cfg *FmtConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Fmt.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.Write && len(args) == 0 {
		return fmt.Errorf("%w: -w requires files", cli.ErrUsage)
	}
	srcs, err := readSources(cc, args)
	if err != nil {
		return err
	}
	for _, src := range srcs {
		out := indent.Reindent(src.Text)
		switch {
		case cfg.Diff:
			if err := writeDiff(cc.Out, src.Path, src.Text, out); err != nil {
				return err
			}
		case cfg.Write:
			if out == src.Text || src.Path == "-" {
				continue
			}
			if err := os.WriteFile(src.Path, []byte(out), 0644); err != nil {
				return fmt.Errorf("could not write %q: %w", src.Path, err)
			}
		default:
			if _, err := io.WriteString(cc.Out, out); err != nil {
				return err
			}
		}
	}
	return nil
}

// writeDiff writes a line diff of a against b, headed by path, when they
// differ.
func writeDiff(w io.Writer, path, a, b string) error {
	if a == b {
		return nil
	}
	_, err := fmt.Fprintf(w, "--- %s\n+++ %s (reindented)\n%s", path, path, lineDiff(a, b))
	return err
}

// lineDiff renders a line oriented diff with - and + prefixes.
func lineDiff(a, b string) string {
	dmp := diffmatchpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), lines)
	var res []byte
	for _, d := range diffs {
		prefix := " "
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		}
		for _, line := range indent.Split(trimNewline(d.Text)) {
			res = append(res, prefix...)
			res = append(res, line...)
			res = append(res, '\n')
		}
	}
	return string(res)
}

func trimNewline(s string) string {
	if len(s) > 0 && s[len(s)-1] == '\n' {
		return s[:len(s)-1]
	}
	return s
}
