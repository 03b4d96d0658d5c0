package tag

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/signadot/soup/soup/parse"
)

func build(t *testing.T, src string) []Tag {
	t.Helper()
	nodes, pe := parse.ParseAll([]byte(src))
	return Build(nodes, pe)
}

func TestBuildList(t *testing.T) {
	got := build(t, "(a b)")
	want := []Tag{
		{Kind: Begin, Line: 1, Column: 1},
		{Kind: Delimiter, Line: 1, Column: 1},
		{Kind: DelimiterEnd, Line: 1, Column: 2, Level: 2},
		{Kind: Begin, Line: 1, Column: 2},
		{Kind: End, Line: 1, Column: 3, Level: 2},
		{Kind: Begin, Line: 1, Column: 4},
		{Kind: End, Line: 1, Column: 5, Level: 2},
		{Kind: Delimiter, Line: 1, Column: 5},
		{Kind: DelimiterEnd, Line: 1, Column: 6, Level: 2},
		{Kind: End, Line: 1, Column: 6, Level: 0},
	}
	if diff := cmp.Diff(want, got, cmpopts.IgnoreFields(Tag{}, "Node")); diff != "" {
		t.Errorf("tags (-want +got):\n%s", diff)
	}
}

func TestBuildLevels(t *testing.T) {
	tests := []struct {
		src  string
		kind Kind
		line int
		col  int
		want int
	}{
		// vector on the first line aligns its body after the bracket
		{"(let [a 1\nb 2])", DelimiterEnd, 1, 7, 6},
		// a set opener is two wide
		{"#{a}", DelimiterEnd, 1, 3, 2},
		// a list on a later line compounds the parent adjustment
		{"(a\n(b c))", DelimiterEnd, 2, 2, 4},
		{"[a\n[b c]]", DelimiterEnd, 2, 2, 2},
		{"(a\n(b c))", End, 2, 7, 0},
	}
	for _, test := range tests {
		tags := build(t, test.src)
		found := false
		for _, tg := range tags {
			if tg.Kind == test.kind && tg.Line == test.line && tg.Column == test.col {
				found = true
				if tg.Level != test.want {
					t.Errorf("%q %s: level %d want %d", test.src, tg, tg.Level, test.want)
				}
			}
		}
		if !found {
			t.Errorf("%q: no %s at %d:%d in %v", test.src, test.kind, test.line, test.col, tags)
		}
	}
}

func TestBuildMapAndMacro(t *testing.T) {
	tags := build(t, "{:a 'b}")
	begins := 0
	for _, tg := range tags {
		if tg.Kind == Begin {
			begins++
		}
	}
	// map, :a, b
	if begins != 3 {
		t.Errorf("got %d Begin tags: %v", begins, tags)
	}
	if err := Validate(tags); err != nil {
		t.Error(err)
	}
}

func TestBuildError(t *testing.T) {
	tags := build(t, "(+ 1")
	if len(tags) != 1 {
		t.Fatalf("got %v", tags)
	}
	tg := tags[0]
	if tg.Kind != Error || tg.Line != 1 || tg.Column != 5 {
		t.Errorf("got %s", tg)
	}
	if tg.Message != "EOF while reading, starting at line 1" {
		t.Errorf("message %q", tg.Message)
	}

	tags = build(t, "(a) (b")
	if tags[len(tags)-1].Kind != Error {
		t.Errorf("last tag %s", tags[len(tags)-1])
	}
	if err := Validate(tags); err != nil {
		t.Errorf("prefix not balanced: %v", err)
	}
}

func TestBalance(t *testing.T) {
	srcs := []string{
		"(defn f\n[x]\n(+ x 1))",
		"{:a [1 2 #{3}] :b {:c (d)}}",
		"#(inc %) ^:m x @y '(z)",
		"\"multi\nline\" (str \"a\")",
	}
	for _, src := range srcs {
		tags := build(t, src)
		if err := Validate(tags); err != nil {
			t.Errorf("%q: %v", src, err)
		}
		var opens, closes int
		for _, tg := range tags {
			switch tg.Kind {
			case Delimiter:
				opens++
			case DelimiterEnd:
				closes++
			}
		}
		if opens != closes {
			t.Errorf("%q: %d delimiters, %d delimiter ends", src, opens, closes)
		}
		ds := Depths(tags)
		var stack []int
		for i, tg := range tags {
			switch tg.Kind {
			case Begin:
				stack = append(stack, ds[i])
			case End:
				if d := stack[len(stack)-1]; d != ds[i] {
					t.Errorf("%q: begin depth %d end depth %d", src, d, ds[i])
				}
				stack = stack[:len(stack)-1]
			}
		}
	}
}

func TestValidateUnbalanced(t *testing.T) {
	tags := build(t, "(a)")
	if err := Validate(tags[:len(tags)-1]); !errors.Is(err, ErrUnbalanced) {
		t.Errorf("got %v", err)
	}
	if err := Validate(tags[1:]); !errors.Is(err, ErrUnbalanced) {
		t.Errorf("got %v", err)
	}
}

func TestDeepNesting(t *testing.T) {
	depth := 100000
	src := make([]byte, 0, 2*depth)
	for i := 0; i < depth; i++ {
		src = append(src, '[')
	}
	for i := 0; i < depth; i++ {
		src = append(src, ']')
	}
	tags := build(t, string(src))
	if err := Validate(tags); err != nil {
		t.Fatal(err)
	}
}
