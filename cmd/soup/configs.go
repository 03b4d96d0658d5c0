package main

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"
	"github.com/signadot/soup/soup/config"
)

type MainConfig struct {
	ConfigPath string `cli:"name=config desc='config file (default: $SOUP_CONFIG, or soup.yaml, soup.yml or soup.json in the working directory)'"`

	Out      string
	CloseOut func() error

	Main *cli.Command

	loaded *config.Config
}

// Soup returns the loaded configuration.
func (cfg *MainConfig) Soup() (*config.Config, error) {
	if cfg.loaded != nil {
		return cfg.loaded, nil
	}
	c, err := config.Resolve(cfg.ConfigPath, ".")
	if err != nil {
		return nil, err
	}
	cfg.loaded = c
	return c, nil
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

type RenderConfig struct {
	*MainConfig
	Colors bool `cli:"name=colors desc='colour delimiters by depth'"`
	Eval   bool `cli:"name=eval desc='evaluate and include the result overlay'"`

	Render *cli.Command
}

type ViewConfig struct {
	*MainConfig
	Color bool `cli:"name=color desc='output with color even when not a terminal'"`

	View *cli.Command
}

type FmtConfig struct {
	*MainConfig
	Diff  bool `cli:"name=d desc='print a diff instead of the reindented source'"`
	Write bool `cli:"name=w desc='write the result back to the files'"`

	Fmt *cli.Command
}

type EvalConfig struct {
	*MainConfig
	Env map[string]any

	Eval *cli.Command
}

type TagsConfig struct {
	*MainConfig
	Check  bool `cli:"name=check desc='only check that the tags balance'"`
	Tokens bool `cli:"name=tokens desc='print the tokens instead of the tags'"`

	Tags *cli.Command
}
