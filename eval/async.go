package eval

import (
	"context"
	"fmt"

	"github.com/signadot/soup/soup/ir"
)

// Interpreter evaluates forms asynchronously.
type Interpreter struct{}

// EvalAsync evaluates form on its own goroutine and reports the outcome
// to cb exactly once. A panic during evaluation is reported as an error.
func (Interpreter) EvalAsync(ctx context.Context, form *ir.Node, env *Env, cb func(any, error)) {
	go func() {
		var (
			v   any
			err error
		)
		func() {
			defer func() {
				if x := recover(); x != nil {
					v, err = nil, fmt.Errorf("panic: %v", x)
				}
			}()
			v, err = Eval(ctx, form, env)
		}()
		cb(v, err)
	}()
}
