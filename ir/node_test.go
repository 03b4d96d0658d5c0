package ir_test

import (
	"errors"
	"testing"

	"github.com/signadot/soup/soup/ir"
	"github.com/signadot/soup/soup/parse"
)

func TestFind(t *testing.T) {
	nodes, pe := parse.ParseAll([]byte("(a [b c])"))
	if pe != nil {
		t.Fatal(pe)
	}
	root := nodes[0]
	tests := []struct {
		col   int
		typ   ir.Type
		depth int
		path  string
	}{
		{1, ir.ListType, 0, "$"},
		{2, ir.SymbolType, 1, "$[0]"},
		{4, ir.VectorType, 1, "$[1]"},
		{5, ir.SymbolType, 2, "$[1][0]"},
		{9, ir.ListType, 0, "$"},
	}
	for _, test := range tests {
		n := root.Find(1, test.col)
		if n == nil {
			t.Errorf("col %d: nothing found", test.col)
			continue
		}
		if n.Type != test.typ || n.Depth() != test.depth || n.Path() != test.path {
			t.Errorf("col %d: got %s depth %d at %s", test.col, n.Type, n.Depth(), n.Path())
		}
	}
	if n := root.Find(1, 10); n != nil {
		t.Errorf("found %s past the end", n.Type)
	}
}

func TestSpanContains(t *testing.T) {
	s := ir.Span{Line: 1, Column: 3, EndLine: 2, EndColumn: 2}
	tests := []struct {
		line, col int
		want      bool
	}{
		{1, 2, false},
		{1, 3, true},
		{1, 80, true},
		{2, 1, true},
		{2, 2, false},
		{3, 1, false},
	}
	for _, test := range tests {
		if got := s.Contains(test.line, test.col); got != test.want {
			t.Errorf("Contains(%d, %d) = %v", test.line, test.col, got)
		}
	}
}

func TestConstructors(t *testing.T) {
	n := ir.List(ir.Symbol("+"), ir.FromInt(1), ir.Vector(ir.Keyword("k")), ir.Set(ir.Nil()))
	for i, c := range n.Values {
		if c.Parent != n || c.ParentIndex != i {
			t.Errorf("child %d: bad parent link", i)
		}
	}
	if got := n.Values[2].Values[0].Depth(); got != 2 {
		t.Errorf("depth %d", got)
	}
	m, err := ir.Map(ir.Keyword("a"), ir.FromInt(1), ir.Keyword("b"), ir.FromString("x"))
	if err != nil {
		t.Fatal(err)
	}
	kvs, err := m.Entries()
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Values) != 2 || len(kvs) != 4 || kvs[2].String != "b" {
		t.Errorf("map: %d pairs, %d entries", len(m.Values), len(kvs))
	}
	if _, err := ir.Map(ir.Keyword("a")); !errors.Is(err, ir.ErrOddMap) {
		t.Errorf("odd map: %v", err)
	}
	if _, err := n.Entries(); !errors.Is(err, ir.ErrNotMap) {
		t.Errorf("entries of a list: %v", err)
	}
	q := ir.Macro("'", ir.Symbol("x"))
	if q.Type != ir.MacroType || q.Values[0].Parent != q {
		t.Errorf("macro %+v", q)
	}
}
