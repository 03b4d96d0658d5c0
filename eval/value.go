package eval

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/signadot/soup/soup/ir"
	"github.com/signadot/soup/soup/token"
)

type (
	Keyword string
	Sym     string
	Char    rune
	List    []any
	Vector  []any
)

// Map is an insertion ordered map keyed by value equality.
type Map struct {
	keys  []any
	vals  []any
	index map[string]int
}

func NewMap() *Map {
	return &Map{index: map[string]int{}}
}

func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

func (m *Map) Get(k any) (any, bool) {
	if m == nil {
		return nil, false
	}
	i, ok := m.index[Print(k)]
	if !ok {
		return nil, false
	}
	return m.vals[i], true
}

// Assoc returns a copy of m with k bound to v.
func (m *Map) Assoc(k, v any) *Map {
	res := NewMap()
	for i := range m.Len() {
		res.put(m.keys[i], m.vals[i])
	}
	res.put(k, v)
	return res
}

func (m *Map) put(k, v any) {
	h := Print(k)
	if i, ok := m.index[h]; ok {
		m.vals[i] = v
		return
	}
	m.index[h] = len(m.keys)
	m.keys = append(m.keys, k)
	m.vals = append(m.vals, v)
}

// Each calls f with each entry in insertion order.
func (m *Map) Each(f func(k, v any)) {
	for i := range m.Len() {
		f(m.keys[i], m.vals[i])
	}
}

// Set is an insertion ordered set keyed by value equality.
type Set struct {
	items []any
	index map[string]bool
}

func NewSet(items ...any) *Set {
	s := &Set{index: map[string]bool{}}
	for _, it := range items {
		s.add(it)
	}
	return s
}

func (s *Set) add(v any) {
	h := Print(v)
	if s.index[h] {
		return
	}
	s.index[h] = true
	s.items = append(s.items, v)
}

func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

func (s *Set) Contains(v any) bool {
	return s != nil && s.index[Print(v)]
}

func (s *Set) Items() []any {
	if s == nil {
		return nil
	}
	return s.items
}

// Conj returns a copy of s with vs added.
func (s *Set) Conj(vs ...any) *Set {
	res := NewSet(s.Items()...)
	for _, v := range vs {
		res.add(v)
	}
	return res
}

// Truthy is false for nil and false only.
func Truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	}
	return true
}

// Equal compares values; lists and vectors with equal items are equal.
func Equal(a, b any) bool {
	switch x := a.(type) {
	case List, Vector:
		xs, _ := sequential(x)
		ys, ok := sequential(b)
		if !ok || len(xs) != len(ys) {
			return false
		}
		for i := range xs {
			if !Equal(xs[i], ys[i]) {
				return false
			}
		}
		return true
	case *Map:
		y, ok := b.(*Map)
		if !ok || x.Len() != y.Len() {
			return false
		}
		for i := range x.Len() {
			yv, ok := y.Get(x.keys[i])
			if !ok || !Equal(x.vals[i], yv) {
				return false
			}
		}
		return true
	case *Set:
		y, ok := b.(*Set)
		if !ok || x.Len() != y.Len() {
			return false
		}
		for _, it := range x.items {
			if !y.Contains(it) {
				return false
			}
		}
		return true
	}
	switch b.(type) {
	case List, Vector, *Map, *Set:
		return false
	}
	return a == b
}

func sequential(v any) ([]any, bool) {
	switch x := v.(type) {
	case List:
		return x, true
	case Vector:
		return x, true
	}
	return nil, false
}

// Print renders v in reader syntax.
func Print(v any) string {
	var b strings.Builder
	printTo(&b, v)
	return b.String()
}

func printTo(b *strings.Builder, v any) {
	switch x := v.(type) {
	case nil:
		b.WriteString("nil")
	case bool:
		b.WriteString(strconv.FormatBool(x))
	case int64:
		b.WriteString(strconv.FormatInt(x, 10))
	case float64:
		b.WriteString(formatFloat(x))
	case string:
		b.WriteString(token.Quote(x))
	case Keyword:
		b.WriteString(":" + string(x))
	case Sym:
		b.WriteString(string(x))
	case Char:
		b.WriteString(token.CharName(rune(x)))
	case *regexp.Regexp:
		b.WriteString(`#"` + x.String() + `"`)
	case List:
		printSeq(b, "(", ")", x)
	case Vector:
		printSeq(b, "[", "]", x)
	case *Set:
		printSeq(b, "#{", "}", x.Items())
	case *Map:
		b.WriteString("{")
		for i := range x.Len() {
			if i > 0 {
				b.WriteString(", ")
			}
			printTo(b, x.keys[i])
			b.WriteByte(' ')
			printTo(b, x.vals[i])
		}
		b.WriteString("}")
	case *Fn:
		fmt.Fprintf(b, "#function[%s]", x.qualified())
	case Symbol:
		fmt.Fprintf(b, "#function[clojure.core/%s]", x)
	default:
		fmt.Fprintf(b, "#object[%T %v]", v, v)
	}
}

func printSeq(b *strings.Builder, open, close string, xs []any) {
	b.WriteString(open)
	for i, x := range xs {
		if i > 0 {
			b.WriteByte(' ')
		}
		printTo(b, x)
	}
	b.WriteString(close)
}

func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if strings.ContainsAny(s, ".eEnN") {
		return s
	}
	return s + ".0"
}

// Str renders v the way str concatenates it: strings and characters
// as themselves, nil as nothing.
func Str(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case Char:
		return string(rune(x))
	}
	return Print(v)
}

// seq returns the items of a sequential or countable value.
func seq(v any) ([]any, bool) {
	switch x := v.(type) {
	case nil:
		return nil, true
	case List:
		return x, true
	case Vector:
		return x, true
	case *Set:
		return x.Items(), true
	case *Map:
		res := make([]any, 0, x.Len())
		x.Each(func(k, v any) { res = append(res, Vector{k, v}) })
		return res, true
	case string:
		res := []any{}
		for _, r := range x {
			res = append(res, Char(r))
		}
		return res, true
	}
	return nil, false
}

// Data converts a node to the value it denotes unevaluated, as quote does.
func Data(n *ir.Node) (any, error) {
	switch n.Type {
	case ir.NilType:
		return nil, nil
	case ir.BoolType:
		return n.Bool, nil
	case ir.NumberType:
		if n.Int64 != nil {
			return *n.Int64, nil
		}
		if n.Float64 != nil {
			return *n.Float64, nil
		}
		return nil, fmt.Errorf("%w: number %s", ErrSyntax, n.Number)
	case ir.StringType:
		return n.String, nil
	case ir.KeywordType:
		return Keyword(n.String), nil
	case ir.SymbolType:
		return Sym(n.String), nil
	case ir.CharType:
		r, err := token.CharValue(n.String)
		if err != nil {
			return nil, err
		}
		return Char(r), nil
	case ir.RegexType:
		return regexp.Compile(n.String)
	case ir.ListType, ir.VectorType, ir.SetType:
		items := make([]any, len(n.Values))
		for i, c := range n.Values {
			v, err := Data(c)
			if err != nil {
				return nil, err
			}
			items[i] = v
		}
		switch n.Type {
		case ir.VectorType:
			return Vector(items), nil
		case ir.SetType:
			return NewSet(items...), nil
		}
		return List(items), nil
	case ir.MapType:
		m := NewMap()
		for _, p := range n.Values {
			k, err := Data(p.Values[0])
			if err != nil {
				return nil, err
			}
			v, err := Data(p.Values[1])
			if err != nil {
				return nil, err
			}
			m.put(k, v)
		}
		return m, nil
	case ir.MacroType:
		inner, err := Data(n.Values[len(n.Values)-1])
		if err != nil {
			return nil, err
		}
		name, ok := macroNames[n.String]
		if !ok {
			return inner, nil
		}
		return List{Sym(name), inner}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupported, n.Type)
}

var macroNames = map[string]string{
	"'":  "quote",
	"`":  "syntax-quote",
	"~":  "unquote",
	"~@": "unquote-splicing",
	"@":  "deref",
	"#'": "var",
}
