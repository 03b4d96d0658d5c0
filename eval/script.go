package eval

import (
	"fmt"
	"os"

	"github.com/expr-lang/expr"
	"github.com/signadot/soup/soup/debug"
	"github.com/signadot/soup/soup/ir"
	"github.com/signadot/soup/soup/parse"
)

type scriptAs string

const (
	scriptAsAny    scriptAs = "any"
	scriptAsString scriptAs = "string"
	scriptAsValue  scriptAs = "value"
)

func parseScriptAs(v string) (scriptAs, error) {
	as, ok := map[string]scriptAs{
		"any":    scriptAsAny,
		"string": scriptAsString,
		"value":  scriptAsValue,
	}[v]
	if ok {
		return as, nil
	}
	return "", fmt.Errorf("%w: invalid script as: %q", ErrSyntax, v)
}

// script evaluates (script "source" :as?) with expr-lang.
func (ev *evaluator) script(n *ir.Node, sc *scope) (any, error) {
	if err := formArity("script", n, 1, 2); err != nil {
		return nil, err
	}
	srcV, err := ev.eval(n.Values[1], sc)
	if err != nil {
		return nil, err
	}
	src, ok := srcV.(string)
	if !ok {
		return nil, typeErr("script", "a string", srcV)
	}
	as := scriptAsAny
	if len(n.Values) == 3 {
		kw := n.Values[2]
		if kw.Type != ir.KeywordType {
			return nil, fmt.Errorf("%w: script expects a keyword, got %s", ErrSyntax, kw.Type)
		}
		if as, err = parseScriptAs(kw.String); err != nil {
			return nil, err
		}
	}
	if debug.Eval() {
		debug.Logf("script %q as %s\n", src, as)
	}
	env := map[string]any{}
	for k, v := range ev.env.Vars() {
		env[k] = ev.native(v)
	}
	locals := map[string]any{}
	sc.flatten(locals)
	for k, v := range locals {
		env[k] = ev.native(v)
	}
	prg, err := expr.Compile(src, ev.exprOpts()...)
	if err != nil {
		return nil, err
	}
	res, err := expr.Run(prg, env)
	if err != nil {
		return nil, err
	}
	switch as {
	case scriptAsString:
		switch v := res.(type) {
		case string:
			return v, nil
		case nil:
			return nil, nil
		default:
			return fmt.Sprint(v), nil
		}
	case scriptAsValue:
		v, ok := res.(string)
		if !ok {
			return nil, fmt.Errorf("%w: script(value) but returned type %T", ErrType, res)
		}
		form, err := parse.ReadString(v)
		if err != nil {
			return nil, err
		}
		return Data(form)
	}
	return FromNative(res)
}

// native converts a value for use in scripts; functions become callable.
func (ev *evaluator) native(v any) any {
	switch v.(type) {
	case *Fn, Symbol:
		return func(params ...any) (any, error) {
			args := make([]any, len(params))
			for i, p := range params {
				a, err := FromNative(p)
				if err != nil {
					return nil, err
				}
				args[i] = a
			}
			res, err := ev.apply(v, args)
			if err != nil {
				return nil, err
			}
			return ToNative(res), nil
		}
	}
	return ToNative(v)
}

func (ev *evaluator) exprOpts() []expr.Option {
	return []expr.Option{
		expr.Function("ns", func(params ...any) (any, error) {
			return ev.env.Current(), nil
		},
			new(func() string)),
		expr.Function("resolve", func(params ...any) (any, error) {
			v, err := ev.env.Resolve(params[0].(string))
			if err != nil {
				return nil, err
			}
			return ToNative(v), nil
		},
			new(func(string) any)),
		expr.Function("getenv", func(params ...any) (any, error) {
			return os.Getenv(params[0].(string)), nil
		},
			new(func(string) string)),
	}
}
