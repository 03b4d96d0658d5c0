package eval

import (
	"context"
	"fmt"
	"io"
	"math"
	"strings"
)

func coreSymbols() []Symbol {
	return []Symbol{
		pure("+", func(args []any) (any, error) { return fold("+", int64(0), args, add) }),
		pure("*", func(args []any) (any, error) { return fold("*", int64(1), args, mul) }),
		pure("-", minus),
		pure("/", divide),
		pure("=", func(args []any) (any, error) {
			if err := arity("=", args, 1, -1); err != nil {
				return nil, err
			}
			for i := 1; i < len(args); i++ {
				if !Equal(args[i-1], args[i]) {
					return false, nil
				}
			}
			return true, nil
		}),
		pure("not=", func(args []any) (any, error) {
			if err := arity("not=", args, 1, -1); err != nil {
				return nil, err
			}
			for i := 1; i < len(args); i++ {
				if !Equal(args[i-1], args[i]) {
					return true, nil
				}
			}
			return false, nil
		}),
		pure("<", compare("<", func(c int) bool { return c < 0 })),
		pure(">", compare(">", func(c int) bool { return c > 0 })),
		pure("<=", compare("<=", func(c int) bool { return c <= 0 })),
		pure(">=", compare(">=", func(c int) bool { return c >= 0 })),
		pure("inc", func(args []any) (any, error) {
			if err := arity("inc", args, 1, 1); err != nil {
				return nil, err
			}
			return add("inc", args[0], int64(1))
		}),
		pure("dec", func(args []any) (any, error) {
			if err := arity("dec", args, 1, 1); err != nil {
				return nil, err
			}
			return sub("dec", args[0], int64(1))
		}),
		pure("mod", modulo),
		pure("not", func(args []any) (any, error) {
			if err := arity("not", args, 1, 1); err != nil {
				return nil, err
			}
			return !Truthy(args[0]), nil
		}),
		pure("str", func(args []any) (any, error) {
			var b strings.Builder
			for _, a := range args {
				b.WriteString(Str(a))
			}
			return b.String(), nil
		}),
		pure("list", func(args []any) (any, error) { return List(append([]any{}, args...)), nil }),
		pure("vector", func(args []any) (any, error) { return Vector(append([]any{}, args...)), nil }),
		pure("hash-set", func(args []any) (any, error) { return NewSet(args...), nil }),
		pure("hash-map", func(args []any) (any, error) {
			if len(args)%2 != 0 {
				return nil, fmt.Errorf("%w: hash-map expects an even number of args, got %d", ErrArity, len(args))
			}
			m := NewMap()
			for i := 0; i < len(args); i += 2 {
				m.put(args[i], args[i+1])
			}
			return m, nil
		}),
		pure("count", count),
		pure("first", func(args []any) (any, error) {
			if err := arity("first", args, 1, 1); err != nil {
				return nil, err
			}
			xs, err := items("first", args[0])
			if err != nil || len(xs) == 0 {
				return nil, err
			}
			return xs[0], nil
		}),
		pure("rest", func(args []any) (any, error) {
			if err := arity("rest", args, 1, 1); err != nil {
				return nil, err
			}
			xs, err := items("rest", args[0])
			if err != nil {
				return nil, err
			}
			if len(xs) == 0 {
				return List{}, nil
			}
			return List(append([]any{}, xs[1:]...)), nil
		}),
		pure("nth", nth),
		pure("conj", conj),
		pure("get", get),
		pure("assoc", assoc),
		pure("keyword", func(args []any) (any, error) {
			if err := arity("keyword", args, 1, 1); err != nil {
				return nil, err
			}
			switch x := args[0].(type) {
			case string:
				return Keyword(x), nil
			case Keyword:
				return x, nil
			case Sym:
				return Keyword(x), nil
			}
			return nil, nil
		}),
		pure("symbol", func(args []any) (any, error) {
			if err := arity("symbol", args, 1, 1); err != nil {
				return nil, err
			}
			switch x := args[0].(type) {
			case string:
				return Sym(x), nil
			case Sym:
				return x, nil
			}
			return nil, typeErr("symbol", "a string", args[0])
		}),
		newBuiltin("println", func(_ context.Context, env *Env, args []any) (any, error) {
			parts := make([]string, len(args))
			for i, a := range args {
				parts[i] = Str(a)
			}
			_, err := io.WriteString(env.out, strings.Join(parts, " ")+"\n")
			return nil, err
		}),
	}
}

// TypeName names the type of v as the reader would.
func TypeName(v any) string {
	switch v.(type) {
	case nil:
		return "nil"
	case bool:
		return "boolean"
	case int64:
		return "long"
	case float64:
		return "double"
	case string:
		return "string"
	case Keyword:
		return "keyword"
	case Sym:
		return "symbol"
	case Char:
		return "character"
	case List:
		return "list"
	case Vector:
		return "vector"
	case *Map:
		return "map"
	case *Set:
		return "set"
	case *Fn, Symbol:
		return "function"
	}
	return fmt.Sprintf("%T", v)
}

func arity(name string, args []any, lo, hi int) error {
	if len(args) < lo || (hi >= 0 && len(args) > hi) {
		return fmt.Errorf("%w (%d) passed to: %s", ErrArity, len(args), name)
	}
	return nil
}

func typeErr(name, want string, got any) error {
	return fmt.Errorf("%w: %s expects %s, got %s", ErrType, name, want, TypeName(got))
}

func number(name string, v any) (int64, float64, bool, error) {
	switch x := v.(type) {
	case int64:
		return x, float64(x), false, nil
	case float64:
		return 0, x, true, nil
	}
	return 0, 0, false, typeErr(name, "a number", v)
}

func numOp(name string, a, b any, fi func(x, y int64) (int64, bool), ff func(x, y float64) float64) (any, error) {
	ai, af, aFloat, err := number(name, a)
	if err != nil {
		return nil, err
	}
	bi, bf, bFloat, err := number(name, b)
	if err != nil {
		return nil, err
	}
	if aFloat || bFloat {
		return ff(af, bf), nil
	}
	r, ok := fi(ai, bi)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrOverflow, name)
	}
	return r, nil
}

// addInt, subInt and mulInt report false when the result does not fit in
// an int64.
func addInt(x, y int64) (int64, bool) {
	r := x + y
	return r, (x >= 0) != (y >= 0) || (r >= 0) == (x >= 0)
}

func subInt(x, y int64) (int64, bool) {
	r := x - y
	return r, (x >= 0) == (y >= 0) || (r >= 0) == (x >= 0)
}

func mulInt(x, y int64) (int64, bool) {
	if x == 0 || y == 0 {
		return 0, true
	}
	if (x == -1 && y == math.MinInt64) || (y == -1 && x == math.MinInt64) {
		return 0, false
	}
	r := x * y
	return r, r/y == x
}

func add(name string, a, b any) (any, error) {
	return numOp(name, a, b, addInt, func(x, y float64) float64 { return x + y })
}

func sub(name string, a, b any) (any, error) {
	return numOp(name, a, b, subInt, func(x, y float64) float64 { return x - y })
}

func mul(name string, a, b any) (any, error) {
	return numOp(name, a, b, mulInt, func(x, y float64) float64 { return x * y })
}

func fold(name string, zero any, args []any, f func(string, any, any) (any, error)) (any, error) {
	acc := zero
	for _, a := range args {
		v, err := f(name, acc, a)
		if err != nil {
			return nil, err
		}
		acc = v
	}
	return acc, nil
}

func minus(args []any) (any, error) {
	if err := arity("-", args, 1, -1); err != nil {
		return nil, err
	}
	if len(args) == 1 {
		return sub("-", int64(0), args[0])
	}
	return fold("-", args[0], args[1:], sub)
}

func quotient(name string, a, b any) (any, error) {
	ai, af, aFloat, err := number(name, a)
	if err != nil {
		return nil, err
	}
	bi, bf, bFloat, err := number(name, b)
	if err != nil {
		return nil, err
	}
	if aFloat || bFloat {
		return af / bf, nil
	}
	if bi == 0 {
		return nil, ErrDivideByZero
	}
	if ai == math.MinInt64 && bi == -1 {
		return nil, fmt.Errorf("%w: %s", ErrOverflow, name)
	}
	if ai%bi == 0 {
		return ai / bi, nil
	}
	return af / bf, nil
}

func divide(args []any) (any, error) {
	if err := arity("/", args, 1, -1); err != nil {
		return nil, err
	}
	if len(args) == 1 {
		return quotient("/", int64(1), args[0])
	}
	return fold("/", args[0], args[1:], quotient)
}

func modulo(args []any) (any, error) {
	if err := arity("mod", args, 2, 2); err != nil {
		return nil, err
	}
	ai, af, aFloat, err := number("mod", args[0])
	if err != nil {
		return nil, err
	}
	bi, bf, bFloat, err := number("mod", args[1])
	if err != nil {
		return nil, err
	}
	if aFloat || bFloat {
		r := math.Mod(af, bf)
		if r != 0 && (r < 0) != (bf < 0) {
			r += bf
		}
		return r, nil
	}
	if bi == 0 {
		return nil, ErrDivideByZero
	}
	r := ai % bi
	if r != 0 && (r < 0) != (bi < 0) {
		r += bi
	}
	return r, nil
}

func compare(name string, ok func(int) bool) func([]any) (any, error) {
	return func(args []any) (any, error) {
		if err := arity(name, args, 1, -1); err != nil {
			return nil, err
		}
		for i := 1; i < len(args); i++ {
			_, af, _, err := number(name, args[i-1])
			if err != nil {
				return nil, err
			}
			_, bf, _, err := number(name, args[i])
			if err != nil {
				return nil, err
			}
			c := 0
			switch {
			case af < bf:
				c = -1
			case af > bf:
				c = 1
			}
			if !ok(c) {
				return false, nil
			}
		}
		return true, nil
	}
}

func items(name string, v any) ([]any, error) {
	xs, ok := seq(v)
	if !ok {
		return nil, fmt.Errorf("%w: don't know how to create a sequence from %s in %s", ErrType, TypeName(v), name)
	}
	return xs, nil
}

func count(args []any) (any, error) {
	if err := arity("count", args, 1, 1); err != nil {
		return nil, err
	}
	switch x := args[0].(type) {
	case string:
		return int64(len([]rune(x))), nil
	case *Map:
		return int64(x.Len()), nil
	}
	xs, err := items("count", args[0])
	if err != nil {
		return nil, err
	}
	return int64(len(xs)), nil
}

func nth(args []any) (any, error) {
	if err := arity("nth", args, 2, 3); err != nil {
		return nil, err
	}
	xs, err := items("nth", args[0])
	if err != nil {
		return nil, err
	}
	i, ok := args[1].(int64)
	if !ok {
		return nil, typeErr("nth", "an integer index", args[1])
	}
	if i < 0 || i >= int64(len(xs)) {
		if len(args) == 3 {
			return args[2], nil
		}
		return nil, fmt.Errorf("%w: %d", ErrIndex, i)
	}
	return xs[i], nil
}

func conj(args []any) (any, error) {
	if err := arity("conj", args, 1, -1); err != nil {
		return nil, err
	}
	vs := args[1:]
	switch x := args[0].(type) {
	case nil:
		res := List{}
		for _, v := range vs {
			res = append(List{v}, res...)
		}
		return res, nil
	case List:
		res := append(List{}, x...)
		for _, v := range vs {
			res = append(List{v}, res...)
		}
		return res, nil
	case Vector:
		return append(append(Vector{}, x...), vs...), nil
	case *Set:
		return x.Conj(vs...), nil
	case *Map:
		res := x
		for _, v := range vs {
			kv, ok := v.(Vector)
			if !ok || len(kv) != 2 {
				return nil, typeErr("conj", "a [key value] vector", v)
			}
			res = res.Assoc(kv[0], kv[1])
		}
		return res, nil
	}
	return nil, typeErr("conj", "a collection", args[0])
}

func get(args []any) (any, error) {
	if err := arity("get", args, 2, 3); err != nil {
		return nil, err
	}
	var dflt any
	if len(args) == 3 {
		dflt = args[2]
	}
	switch x := args[0].(type) {
	case *Map:
		if v, ok := x.Get(args[1]); ok {
			return v, nil
		}
	case *Set:
		if x.Contains(args[1]) {
			return args[1], nil
		}
	case Vector:
		if i, ok := args[1].(int64); ok && i >= 0 && i < int64(len(x)) {
			return x[i], nil
		}
	case string:
		rs := []rune(x)
		if i, ok := args[1].(int64); ok && i >= 0 && i < int64(len(rs)) {
			return Char(rs[i]), nil
		}
	}
	return dflt, nil
}

func assoc(args []any) (any, error) {
	if len(args) < 3 || len(args)%2 != 1 {
		return nil, fmt.Errorf("%w (%d) passed to: assoc", ErrArity, len(args))
	}
	switch x := args[0].(type) {
	case nil, *Map:
		m, _ := x.(*Map)
		if m == nil {
			m = NewMap()
		}
		for i := 1; i < len(args); i += 2 {
			m = m.Assoc(args[i], args[i+1])
		}
		return m, nil
	case Vector:
		res := append(Vector{}, x...)
		for i := 1; i < len(args); i += 2 {
			k, ok := args[i].(int64)
			if !ok || k < 0 || k > int64(len(res)) {
				return nil, fmt.Errorf("%w: %s", ErrIndex, Print(args[i]))
			}
			if k == int64(len(res)) {
				res = append(res, args[i+1])
			} else {
				res[k] = args[i+1]
			}
		}
		return res, nil
	}
	return nil, typeErr("assoc", "a map or vector", args[0])
}
