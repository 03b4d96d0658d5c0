package main

import (
	"encoding/json"
	"fmt"

	"github.com/scott-cotton/cli"
	"github.com/signadot/soup/soup/indent"
	"github.com/signadot/soup/soup/tag"
	"github.com/signadot/soup/soup/token"
)

func tags(cfg *TagsConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Tags.Parse(cc, args)
	if err != nil {
		return err
	}
	srcs, err := readSources(cc, args)
	if err != nil {
		return err
	}
	for _, src := range srcs {
		if cfg.Tokens {
			toks, err := token.Tokenize(nil, []byte(src.Text), token.TokenComments())
			if err != nil {
				return fmt.Errorf("%s: %w", src.Path, err)
			}
			token.PrintTokens(cc.Out, toks, src.Path)
			continue
		}
		l := indent.Derive(src.Text)
		if err := tag.Validate(l.Tags); err != nil {
			return fmt.Errorf("%s: %w", src.Path, err)
		}
		if cfg.Check {
			continue
		}
		all := append(append([]tag.Tag{}, l.Tags...), l.Indents...)
		enc := json.NewEncoder(cc.Out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(all); err != nil {
			return fmt.Errorf("error encoding tags of %s: %w", src.Path, err)
		}
	}
	return nil
}
