package main

import (
	"fmt"
	"io"
	"os"

	"github.com/scott-cotton/cli"
)

// source is one input document.
type source struct {
	Path string
	Text string
}

// readSources reads the named files, or standard input when there are
// none. "-" also names standard input.
func readSources(cc *cli.Context, paths []string) ([]source, error) {
	if len(paths) == 0 {
		paths = []string{"-"}
	}
	res := make([]source, 0, len(paths))
	for _, path := range paths {
		var r io.Reader
		if path != "-" {
			f, err := os.Open(path)
			if err != nil {
				return nil, fmt.Errorf("could not open %q: %w", path, err)
			}
			defer f.Close()
			r = f
		} else {
			r = cc.In
		}
		d, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("error reading %q: %w", path, err)
		}
		res = append(res, source{Path: path, Text: string(d)})
	}
	return res, nil
}
