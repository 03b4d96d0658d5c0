package main

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/scott-cotton/cli"
	"github.com/signadot/soup/soup"
	"github.com/signadot/soup/soup/config"
	"github.com/signadot/soup/soup/eval"
	"github.com/signadot/soup/soup/repl"
)

func soupEval(cfg *EvalConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Eval.Parse(cc, args)
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
	env, err := newEnv(sc, cfg.Env, cc.Out)
	if err != nil {
		return err
	}
	for _, src := range srcs {
		if err := evalText(context.Background(), cc.Out, env, src.Text); err != nil {
			return fmt.Errorf("error evaluating %s: %w", src.Path, err)
		}
	}
	return nil
}

// newEnv starts an environment in the configured namespace with the -e
// bindings defined.
func newEnv(sc *config.Config, bindings map[string]any, out io.Writer) (*eval.Env, error) {
	env := eval.NewEnv(eval.StartIn(sc.Namespace), eval.Output(out))
	names := make([]string, 0, len(bindings))
	for name := range bindings {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		v, err := eval.FromNative(bindings[name])
		if err != nil {
			return nil, fmt.Errorf("binding %s: %w", name, err)
		}
		env.Define(name, v)
	}
	return env, nil
}

// evalText prints "line: result" for each evaluable top-level form of
// text. A read error ends the document and is printed at its position.
func evalText(ctx context.Context, w io.Writer, env *eval.Env, text string) error {
	f, err := soup.Refresh(text, soup.Rainbow(false))
	if err != nil {
		return err
	}
	results, err := repl.Run(ctx, f.Elements(), eval.Interpreter{}, env)
	if err != nil {
		return err
	}
	for _, r := range results {
		res := r.Text()
		if r.Err != nil {
			res = "error: " + res
		}
		if _, err := fmt.Fprintf(w, "%d: %s\n", r.Span.Line, res); err != nil {
			return err
		}
	}
	if f.Err != nil {
		_, err := fmt.Fprintf(w, "%d:%d: %s\n", f.Err.Line, f.Err.Column, f.Err.Message)
		return err
	}
	return nil
}

func envFunc(env map[string]any, a string) error {
	key, val, ok := strings.Cut(a, "=")
	if !ok || key == "" {
		return fmt.Errorf("%w: argument %q expected name=val", cli.ErrUsage, a)
	}
	var v any
	if err := yaml.Unmarshal([]byte(val), &v); err != nil {
		return fmt.Errorf("%w: value of %s: %w", cli.ErrUsage, key, err)
	}
	env[key] = v
	return nil
}
