package eval

import (
	"fmt"

	"github.com/signadot/soup/soup/ir"
)

// Fn is a function defined by fn, defn or #().
type Fn struct {
	Name    string
	NS      string
	closure *scope
	clauses []*clause
}

type clause struct {
	params []string
	rest   string
	body   []*ir.Node
}

func (f *Fn) qualified() string {
	if f.Name == "" {
		return f.NS + "/fn"
	}
	return f.NS + "/" + f.Name
}

func (f *Fn) String() string {
	return Print(f)
}

// addArities parses either a single [params] body or a list of
// ([params] body) clauses.
func (f *Fn) addArities(form string, rest []*ir.Node) error {
	if len(rest) == 0 {
		return fmt.Errorf("%w: %s requires a parameter vector", ErrSyntax, form)
	}
	if rest[0].Type == ir.VectorType {
		cl, err := newClause(form, rest[0], rest[1:])
		if err != nil {
			return err
		}
		f.clauses = append(f.clauses, cl)
		return nil
	}
	for _, c := range rest {
		if c.Type != ir.ListType || len(c.Values) == 0 || c.Values[0].Type != ir.VectorType {
			return fmt.Errorf("%w: %s expects ([params] body) clauses", ErrSyntax, form)
		}
		cl, err := newClause(form, c.Values[0], c.Values[1:])
		if err != nil {
			return err
		}
		f.clauses = append(f.clauses, cl)
	}
	return nil
}

func newClause(form string, params *ir.Node, body []*ir.Node) (*clause, error) {
	cl := &clause{body: body}
	ps := params.Values
	for i := 0; i < len(ps); i++ {
		name, err := symbolName(form, ps[i])
		if err != nil {
			return nil, err
		}
		if name != "&" {
			cl.params = append(cl.params, name)
			continue
		}
		if i != len(ps)-2 {
			return nil, fmt.Errorf("%w: %s expects one parameter after &", ErrSyntax, form)
		}
		rest, err := symbolName(form, ps[i+1])
		if err != nil {
			return nil, err
		}
		cl.rest = rest
		break
	}
	return cl, nil
}

func (f *Fn) match(n int) *clause {
	for _, cl := range f.clauses {
		if cl.rest == "" && len(cl.params) == n {
			return cl
		}
	}
	for _, cl := range f.clauses {
		if cl.rest != "" && len(cl.params) <= n {
			return cl
		}
	}
	return nil
}

func (f *Fn) call(ev *evaluator, args []any) (any, error) {
	cl := f.match(len(args))
	if cl == nil {
		return nil, fmt.Errorf("%w (%d) passed to: %s", ErrArity, len(args), f.qualified())
	}
	sc := f.closure.child()
	if f.Name != "" {
		sc.vars[f.Name] = f
	}
	for i, p := range cl.params {
		sc.vars[p] = args[i]
	}
	if len(cl.params) > 0 && cl.params[0] == "%1" {
		sc.vars["%"] = args[0]
	}
	if cl.rest != "" {
		var rest any
		if len(args) > len(cl.params) {
			rest = List(append([]any{}, args[len(cl.params):]...))
		}
		sc.vars[cl.rest] = rest
	}
	return ev.body(cl.body, sc)
}
