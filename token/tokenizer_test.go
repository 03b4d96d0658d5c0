package token

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type tokPos struct {
	Type               TokenType
	Text               string
	Line, Col          int
	EndLine, EndColumn int
}

func positions(toks []Token) []tokPos {
	res := make([]tokPos, len(toks))
	for i, t := range toks {
		res[i] = tokPos{t.Type, t.Text, t.Pos.Line, t.Pos.Col, t.End.Line, t.End.Col}
	}
	return res
}

func TestTokenizePositions(t *testing.T) {
	src := "(defn f [x]\n  {:a \"b\nc\"} #{1} 'x)"
	toks, err := Tokenize(nil, []byte(src))
	if err != nil {
		t.Fatal(err)
	}
	want := []tokPos{
		{TLParen, "(", 1, 1, 1, 2},
		{TSymbol, "defn", 1, 2, 1, 6},
		{TSymbol, "f", 1, 7, 1, 8},
		{TLSquare, "[", 1, 9, 1, 10},
		{TSymbol, "x", 1, 10, 1, 11},
		{TRSquare, "]", 1, 11, 1, 12},
		{TLCurl, "{", 2, 3, 2, 4},
		{TKeyword, ":a", 2, 4, 2, 6},
		{TString, "\"b\nc\"", 2, 7, 3, 3},
		{TRCurl, "}", 3, 3, 3, 4},
		{TLSet, "#{", 3, 5, 3, 7},
		{TNumber, "1", 3, 7, 3, 8},
		{TRCurl, "}", 3, 8, 3, 9},
		{TQuote, "'", 3, 10, 3, 11},
		{TSymbol, "x", 3, 11, 3, 12},
		{TRParen, ")", 3, 12, 3, 13},
	}
	if diff := cmp.Diff(want, positions(toks)); diff != "" {
		t.Errorf("positions mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenizeKinds(t *testing.T) {
	src := `nil true false \a \newline #"re\"x" ~@xs ~y @z ^:m #'v #_ -1 +2.5 1/2 0x1F ::k a.b/c ; comment`
	toks, err := Tokenize(nil, []byte(src))
	if err != nil {
		t.Fatal(err)
	}
	var got []TokenType
	for _, tok := range toks {
		got = append(got, tok.Type)
	}
	want := []TokenType{
		TNil, TTrue, TFalse, TChar, TChar, TRegex,
		TUnquoteSplice, TSymbol, TUnquote, TSymbol, TDeref, TSymbol,
		TMeta, TKeyword, TVar, TSymbol, TDiscard,
		TNumber, TNumber, TNumber, TNumber, TKeyword, TSymbol,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("types mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenizeComments(t *testing.T) {
	toks, err := Tokenize(nil, []byte("a ; hi\nb"), TokenComments())
	if err != nil {
		t.Fatal(err)
	}
	if len(toks) != 3 || toks[1].Type != TComment || toks[1].Text != "; hi" {
		t.Fatalf("unexpected tokens %v", positions(toks))
	}
}

func TestTokenizeErrors(t *testing.T) {
	type errTest struct {
		in   string
		err  error
		line int
		col  int
	}
	tests := []errTest{
		{in: `"abc`, err: ErrUnterminated, line: 1, col: 5},
		{in: "(a\n \"x", err: ErrUnterminated, line: 2, col: 4},
		{in: `"\q"`, err: ErrBadEscape, line: 1, col: 1},
		{in: `1abc`, err: ErrNumber, line: 1, col: 1},
		{in: `#?x`, err: ErrDispatch, line: 1, col: 1},
		{in: `\foo`, err: ErrBadChar, line: 1, col: 1},
		{in: `a :`, err: ErrToken, line: 1, col: 3},
		{in: "a \xff", err: ErrBadUTF8, line: 1, col: 3},
	}
	for _, et := range tests {
		_, err := Tokenize(nil, []byte(et.in))
		if !errors.Is(err, et.err) {
			t.Errorf("%q: got %v want %v", et.in, err, et.err)
			continue
		}
		var te *TokenizeErr
		if !errors.As(err, &te) {
			t.Errorf("%q: not a TokenizeErr: %v", et.in, err)
			continue
		}
		if te.Pos.Line != et.line || te.Pos.Col != et.col {
			t.Errorf("%q: got position %d:%d want %d:%d", et.in, te.Pos.Line, te.Pos.Col, et.line, et.col)
		}
	}
}

func TestParseNumber(t *testing.T) {
	ints := map[string]int64{"1": 1, "-7": -7, "+3": 3, "0x1F": 31, "2r101": 5, "12N": 12}
	for in, want := range ints {
		i, f, err := ParseNumber(in)
		if err != nil || i == nil || f != nil || *i != want {
			t.Errorf("%s: got %v %v %v", in, i, f, err)
		}
	}
	floats := map[string]float64{"1.5": 1.5, "1e3": 1000, "1/4": 0.25, "-1/2": -0.5, "2.0M": 2}
	for in, want := range floats {
		i, f, err := ParseNumber(in)
		if err != nil || f == nil || i != nil || *f != want {
			t.Errorf("%s: got %v %v %v", in, i, f, err)
		}
	}
	for _, in := range []string{"1a", "1/0", "0xZZ", "1_000"} {
		if _, _, err := ParseNumber(in); err == nil {
			t.Errorf("%s: expected error", in)
		}
	}
}
