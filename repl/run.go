package repl

import (
	"context"
	"sync"

	"github.com/signadot/soup/soup/debug"
	"github.com/signadot/soup/soup/eval"
	"github.com/signadot/soup/soup/ir"
	"github.com/signadot/soup/soup/parse"
	"github.com/sourcegraph/conc/panics"
)

// Evaluator evaluates one form asynchronously, calling cb once with the
// outcome.
type Evaluator interface {
	EvalAsync(ctx context.Context, form *ir.Node, env *eval.Env, cb func(any, error))
}

// Result is the outcome of evaluating one element.
type Result struct {
	Value string
	Err   error
	Span  ir.Span
}

// Text is the value, or the error message.
func (r Result) Text() string {
	if r.Err != nil {
		return r.Err.Error()
	}
	return r.Value
}

type outcome struct {
	v   any
	err error
}

// Run evaluates elems in order against env, starting in the namespace
// env started in. Each form is submitted only once the previous one reported.
// A failing form yields an error result and the next form still runs.
// When ctx is done Run stops after the form in flight has reported and
// returns the results so far with the context error.
func Run(ctx context.Context, elems []Element, ev Evaluator, env *eval.Env) ([]Result, error) {
	env.Reset()
	res := make([]Result, 0, len(elems))
	for _, el := range elems {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		r := Result{Span: el.Span}
		form, err := parse.ReadString(el.Text)
		if err != nil {
			r.Err = err
			res = append(res, r)
			continue
		}
		o := step(ctx, ev, form, env)
		if o.err != nil {
			r.Err = o.err
		} else {
			r.Value = eval.Print(o.v)
		}
		if debug.Eval() {
			debug.Logf("%s => %s\n", el.Span, r.Text())
		}
		res = append(res, r)
	}
	return res, ctx.Err()
}

// step submits form and waits for its callback.
func step(ctx context.Context, ev Evaluator, form *ir.Node, env *eval.Env) outcome {
	ch := make(chan outcome, 1)
	var once sync.Once
	cb := func(v any, err error) {
		once.Do(func() { ch <- outcome{v: v, err: err} })
	}
	var pc panics.Catcher
	pc.Try(func() { ev.EvalAsync(ctx, form, env, cb) })
	if r := pc.Recovered(); r != nil {
		cb(nil, r.AsError())
	}
	return <-ch
}
