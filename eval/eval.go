package eval

import (
	"context"
	"fmt"
	"regexp"
	"sort"

	"github.com/signadot/soup/soup/debug"
	"github.com/signadot/soup/soup/ir"
	"github.com/signadot/soup/soup/token"
)

// Eval evaluates form in env.
func Eval(ctx context.Context, form *ir.Node, env *Env) (any, error) {
	ev := &evaluator{ctx: ctx, env: env}
	v, err := ev.eval(form, nil)
	if debug.Eval() {
		debug.Logf("eval %s in %s: %s %v\n", form.Span, env.Current(), Print(v), err)
	}
	return v, err
}

type evaluator struct {
	ctx   context.Context
	env   *Env
	depth int
}

type specialForm func(ev *evaluator, n *ir.Node, sc *scope) (any, error)

var specialForms map[string]specialForm

func init() {
	specialForms = map[string]specialForm{
		"def":    (*evaluator).def,
		"ns":     (*evaluator).ns,
		"in-ns":  (*evaluator).inNS,
		"quote":  (*evaluator).quote,
		"if":     (*evaluator).ifForm,
		"do":     (*evaluator).do,
		"let":    (*evaluator).let,
		"fn":     (*evaluator).fn,
		"defn":   (*evaluator).defn,
		"when":   (*evaluator).when,
		"and":    (*evaluator).and,
		"or":     (*evaluator).or,
		"script": (*evaluator).script,
	}
}

// SpecialForms returns the sorted names of the special forms.
func SpecialForms() []string {
	res := make([]string, 0, len(specialForms))
	for k := range specialForms {
		res = append(res, k)
	}
	sort.Strings(res)
	return res
}

func (ev *evaluator) eval(n *ir.Node, sc *scope) (any, error) {
	if err := ev.ctx.Err(); err != nil {
		return nil, err
	}
	switch n.Type {
	case ir.NilType, ir.BoolType, ir.NumberType, ir.StringType, ir.KeywordType, ir.CharType:
		return Data(n)
	case ir.RegexType:
		re, err := regexp.Compile(n.String)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSyntax, err)
		}
		return re, nil
	case ir.SymbolType:
		if v, ok := sc.lookup(n.String); ok {
			return v, nil
		}
		return ev.env.Resolve(n.String)
	case ir.VectorType, ir.SetType:
		items, err := ev.evalAll(n.Values, sc)
		if err != nil {
			return nil, err
		}
		if n.Type == ir.SetType {
			return NewSet(items...), nil
		}
		return Vector(items), nil
	case ir.MapType:
		kvs, err := n.Entries()
		if err != nil {
			return nil, err
		}
		vs, err := ev.evalAll(kvs, sc)
		if err != nil {
			return nil, err
		}
		m := NewMap()
		for i := 0; i+1 < len(vs); i += 2 {
			m.put(vs[i], vs[i+1])
		}
		return m, nil
	case ir.MacroType:
		return ev.macro(n, sc)
	case ir.ListType:
		if n.Open == "#(" {
			return ev.fnLiteral(n, sc)
		}
		return ev.list(n, sc)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupported, n.Type)
}

func (ev *evaluator) evalAll(ns []*ir.Node, sc *scope) ([]any, error) {
	res := make([]any, len(ns))
	for i, c := range ns {
		v, err := ev.eval(c, sc)
		if err != nil {
			return nil, err
		}
		res[i] = v
	}
	return res, nil
}

func (ev *evaluator) macro(n *ir.Node, sc *scope) (any, error) {
	last := n.Values[len(n.Values)-1]
	switch n.String {
	case "'":
		return Data(last)
	case "@", "#'", "^":
		return ev.eval(last, sc)
	}
	return nil, fmt.Errorf("%w: %s outside of a macro", ErrUnsupported, n.String)
}

func (ev *evaluator) list(n *ir.Node, sc *scope) (any, error) {
	if len(n.Values) == 0 {
		return List{}, nil
	}
	head := n.Values[0]
	if head.Type == ir.SymbolType {
		if _, local := sc.lookup(head.String); !local {
			if sf, ok := specialForms[head.String]; ok {
				return sf(ev, n, sc)
			}
		}
	}
	f, err := ev.eval(head, sc)
	if err != nil {
		return nil, err
	}
	args, err := ev.evalAll(n.Values[1:], sc)
	if err != nil {
		return nil, err
	}
	return ev.apply(f, args)
}

func (ev *evaluator) apply(f any, args []any) (any, error) {
	if err := ev.ctx.Err(); err != nil {
		return nil, err
	}
	ev.depth++
	defer func() { ev.depth-- }()
	if ev.env.maxDepth > 0 && ev.depth > ev.env.maxDepth {
		return nil, ErrStackDepth
	}
	switch x := f.(type) {
	case *Fn:
		return x.call(ev, args)
	case Symbol:
		return x.Apply(ev.ctx, ev.env, args)
	case Keyword, *Map, *Set:
		if err := arity(Print(f), args, 1, 2); err != nil {
			return nil, err
		}
		if _, ok := f.(Keyword); ok {
			return get(append([]any{args[0], f}, args[1:]...))
		}
		return get(append([]any{f}, args...))
	case Vector:
		if err := arity("vector", args, 1, 1); err != nil {
			return nil, err
		}
		return nth([]any{x, args[0]})
	}
	return nil, fmt.Errorf("%w: %s cannot be called", ErrNotFn, TypeName(f))
}

// symbolName returns the name of a symbol node.
func symbolName(form string, n *ir.Node) (string, error) {
	if n.Type != ir.SymbolType {
		return "", fmt.Errorf("%w: %s expects a symbol, got %s", ErrSyntax, form, n.Type)
	}
	return n.String, nil
}

func formArity(form string, n *ir.Node, lo, hi int) error {
	args := len(n.Values) - 1
	if args < lo || (hi >= 0 && args > hi) {
		return fmt.Errorf("%w: %s with %d forms", ErrSyntax, form, args)
	}
	return nil
}

func (ev *evaluator) def(n *ir.Node, sc *scope) (any, error) {
	if err := formArity("def", n, 1, 3); err != nil {
		return nil, err
	}
	name, err := symbolName("def", n.Values[1])
	if err != nil {
		return nil, err
	}
	var v any
	if len(n.Values) > 2 {
		v, err = ev.eval(n.Values[len(n.Values)-1], sc)
		if err != nil {
			return nil, err
		}
	}
	if f, ok := v.(*Fn); ok && f.Name == "" {
		f.Name = name
	}
	ev.env.Define(name, v)
	return v, nil
}

func (ev *evaluator) ns(n *ir.Node, _ *scope) (any, error) {
	if err := formArity("ns", n, 1, -1); err != nil {
		return nil, err
	}
	name, err := symbolName("ns", n.Values[1])
	if err != nil {
		return nil, err
	}
	ev.env.InNamespace(name)
	return nil, nil
}

func (ev *evaluator) inNS(n *ir.Node, sc *scope) (any, error) {
	if err := formArity("in-ns", n, 1, 1); err != nil {
		return nil, err
	}
	v, err := ev.eval(n.Values[1], sc)
	if err != nil {
		return nil, err
	}
	s, ok := v.(Sym)
	if !ok {
		return nil, typeErr("in-ns", "a symbol", v)
	}
	ev.env.InNamespace(string(s))
	return nil, nil
}

func (ev *evaluator) quote(n *ir.Node, _ *scope) (any, error) {
	if err := formArity("quote", n, 1, 1); err != nil {
		return nil, err
	}
	return Data(n.Values[1])
}

func (ev *evaluator) ifForm(n *ir.Node, sc *scope) (any, error) {
	if err := formArity("if", n, 2, 3); err != nil {
		return nil, err
	}
	c, err := ev.eval(n.Values[1], sc)
	if err != nil {
		return nil, err
	}
	if Truthy(c) {
		return ev.eval(n.Values[2], sc)
	}
	if len(n.Values) == 4 {
		return ev.eval(n.Values[3], sc)
	}
	return nil, nil
}

func (ev *evaluator) body(forms []*ir.Node, sc *scope) (any, error) {
	var res any
	for _, f := range forms {
		v, err := ev.eval(f, sc)
		if err != nil {
			return nil, err
		}
		res = v
	}
	return res, nil
}

func (ev *evaluator) do(n *ir.Node, sc *scope) (any, error) {
	return ev.body(n.Values[1:], sc)
}

func (ev *evaluator) when(n *ir.Node, sc *scope) (any, error) {
	if err := formArity("when", n, 1, -1); err != nil {
		return nil, err
	}
	c, err := ev.eval(n.Values[1], sc)
	if err != nil || !Truthy(c) {
		return nil, err
	}
	return ev.body(n.Values[2:], sc)
}

func (ev *evaluator) and(n *ir.Node, sc *scope) (any, error) {
	var v any = true
	for _, f := range n.Values[1:] {
		var err error
		v, err = ev.eval(f, sc)
		if err != nil {
			return nil, err
		}
		if !Truthy(v) {
			return v, nil
		}
	}
	return v, nil
}

func (ev *evaluator) or(n *ir.Node, sc *scope) (any, error) {
	var v any
	for _, f := range n.Values[1:] {
		var err error
		v, err = ev.eval(f, sc)
		if err != nil {
			return nil, err
		}
		if Truthy(v) {
			return v, nil
		}
	}
	return v, nil
}

func (ev *evaluator) let(n *ir.Node, sc *scope) (any, error) {
	if err := formArity("let", n, 1, -1); err != nil {
		return nil, err
	}
	bs := n.Values[1]
	if bs.Type != ir.VectorType || len(bs.Values)%2 != 0 {
		return nil, fmt.Errorf("%w: let requires a vector for its binding with an even number of forms", ErrSyntax)
	}
	inner := sc.child()
	for i := 0; i < len(bs.Values); i += 2 {
		name, err := symbolName("let", bs.Values[i])
		if err != nil {
			return nil, err
		}
		v, err := ev.eval(bs.Values[i+1], inner)
		if err != nil {
			return nil, err
		}
		inner.vars[name] = v
	}
	return ev.body(n.Values[2:], inner)
}

func (ev *evaluator) fn(n *ir.Node, sc *scope) (any, error) {
	rest := n.Values[1:]
	f := &Fn{NS: ev.env.Current(), closure: sc}
	if len(rest) > 0 && rest[0].Type == ir.SymbolType {
		f.Name = rest[0].String
		rest = rest[1:]
	}
	if err := f.addArities("fn", rest); err != nil {
		return nil, err
	}
	return f, nil
}

func (ev *evaluator) defn(n *ir.Node, sc *scope) (any, error) {
	if err := formArity("defn", n, 2, -1); err != nil {
		return nil, err
	}
	name, err := symbolName("defn", n.Values[1])
	if err != nil {
		return nil, err
	}
	rest := n.Values[2:]
	if len(rest) > 1 && rest[0].Type == ir.StringType {
		rest = rest[1:]
	}
	f := &Fn{Name: name, NS: ev.env.Current(), closure: sc}
	if err := f.addArities("defn", rest); err != nil {
		return nil, err
	}
	ev.env.Define(name, f)
	return f, nil
}

func (ev *evaluator) fnLiteral(n *ir.Node, sc *scope) (any, error) {
	nargs, variadic := 0, false
	stack := append([]*ir.Node{}, n.Values...)
	for len(stack) > 0 {
		x := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if x.Type == ir.ListType && x.Open == "#(" {
			return nil, fmt.Errorf("%w: nested #()s are not allowed", ErrSyntax)
		}
		stack = append(stack, x.Values...)
		if x.Type != ir.SymbolType || len(x.String) == 0 || x.String[0] != '%' {
			continue
		}
		switch arg := x.String[1:]; arg {
		case "":
			nargs = max(nargs, 1)
		case "&":
			variadic = true
		default:
			i, _, err := token.ParseNumber(arg)
			if err != nil || i == nil || *i < 1 {
				return nil, fmt.Errorf("%w: arg literal must be %%, %%& or %%integer", ErrSyntax)
			}
			nargs = max(nargs, int(*i))
		}
	}
	params := make([]string, nargs)
	for i := range params {
		params[i] = fmt.Sprintf("%%%d", i+1)
	}
	cl := &clause{
		params: params,
		body:   []*ir.Node{{Type: ir.ListType, Open: "(", Span: n.Span, Values: n.Values}},
	}
	if variadic {
		cl.rest = "%&"
	}
	return &Fn{NS: ev.env.Current(), closure: sc, clauses: []*clause{cl}}, nil
}
