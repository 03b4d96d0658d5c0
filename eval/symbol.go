package eval

import "context"

// Symbol is a builtin function.
type Symbol interface {
	String() string
	Apply(ctx context.Context, env *Env, args []any) (any, error)
}

type name string

func (s name) String() string {
	return string(s)
}

type builtin struct {
	name
	fn func(ctx context.Context, env *Env, args []any) (any, error)
}

func (b *builtin) Apply(ctx context.Context, env *Env, args []any) (any, error) {
	return b.fn(ctx, env, args)
}

func newBuiltin(n string, fn func(ctx context.Context, env *Env, args []any) (any, error)) Symbol {
	return &builtin{name: name(n), fn: fn}
}

// pure wraps a builtin which does not need the context or env.
func pure(n string, fn func(args []any) (any, error)) Symbol {
	return newBuiltin(n, func(_ context.Context, _ *Env, args []any) (any, error) {
		return fn(args)
	})
}
