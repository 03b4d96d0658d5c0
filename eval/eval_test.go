package eval

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/signadot/soup/soup/parse"
)

func run(t *testing.T, env *Env, src string) (any, error) {
	t.Helper()
	nodes, pe := parse.ParseAll([]byte(src))
	if pe != nil {
		t.Fatalf("%q: %v", src, pe)
	}
	var (
		v   any
		err error
	)
	for _, n := range nodes {
		v, err = Eval(context.Background(), n, env)
		if err != nil {
			return nil, err
		}
	}
	return v, nil
}

func TestEvalPrint(t *testing.T) {
	tests := []struct {
		src, want string
	}{
		{"(+ 1 2)", "3"},
		{"(+)", "0"},
		{"(- 5)", "-5"},
		{"(- 10 1 2)", "7"},
		{"(* 2 3.5)", "7.0"},
		{"(/ 6 3)", "2"},
		{"(/ 1 2)", "0.5"},
		{"(mod -7 3)", "2"},
		{"(inc 1.5)", "2.5"},
		{"(dec 0)", "-1"},
		{"(< 1 2 3)", "true"},
		{"(>= 3 3 4)", "false"},
		{"(= [1 2] '(1 2))", "true"},
		{"(= 1 1.0)", "false"},
		{"(not= 1 2)", "true"},
		{"(not nil)", "true"},
		{`(str "a" 1 :b nil \c)`, `"a1:bc"`},
		{"(list 1 \"x\")", `(1 "x")`},
		{"(vector 1 2)", "[1 2]"},
		{"(hash-map :a 1 :b [2])", "{:a 1, :b [2]}"},
		{"(hash-set 1 1 2)", "#{1 2}"},
		{"(count \"héllo\")", "5"},
		{"(count {:a 1})", "1"},
		{"(first [1 2])", "1"},
		{"(first nil)", "nil"},
		{"(rest [1 2 3])", "(2 3)"},
		{"(nth [1 2 3] 1)", "2"},
		{"(nth [1] 5 :none)", ":none"},
		{"(conj [1] 2 3)", "[1 2 3]"},
		{"(conj '(1) 2 3)", "(3 2 1)"},
		{"(conj #{1} 2)", "#{1 2}"},
		{"(get {:a 1} :a)", "1"},
		{"(get {:a 1} :b 0)", "0"},
		{"(:a {:a 7})", "7"},
		{"({:a 7} :a)", "7"},
		{"(assoc {:a 1} :b 2)", "{:a 1, :b 2}"},
		{"(assoc [1 2] 2 3)", "[1 2 3]"},
		{`(keyword "k")`, ":k"},
		{`(symbol "s")`, "s"},
		{"'(a b)", "(a b)"},
		{"(quote [x])", "[x]"},
		{"(if nil 1 2)", "2"},
		{"(if false 1)", "nil"},
		{"(do 1 2)", "2"},
		{"(let [a 1 b (+ a 1)] (* a b))", "2"},
		{"((fn [x] (* x x)) 4)", "16"},
		{"((fn [& xs] xs) 1 2)", "(1 2)"},
		{"((fn ([] 0) ([x] x)) 9)", "9"},
		{"(#(+ % %2) 1 2)", "3"},
		{"(when true 1 2)", "2"},
		{"(and 1 nil 2)", "nil"},
		{"(or nil false 3)", "3"},
		{"(and)", "true"},
		{"{:a (+ 1 1)}", "{:a 2}"},
		{"#{(inc 1)}", "#{2}"},
		{"\\newline", `\newline`},
		{"(defn sq [x] (* x x)) (sq 5)", "25"},
		{"(defn fact [n] (if (<= n 1) 1 (* n (fact (dec n))))) (fact 10)", "3628800"},
		{"(def x 2) (script \"x * 3\")", "6"},
		{`(script "'a' + 'b'" :string)`, `"ab"`},
		{`(script "'[1 2]'" :value)`, "[1 2]"},
		{"+", "#function[clojure.core/+]"},
		{"(defn f [] 1)", "#function[user/f]"},
		{"(clojure.core/inc 1)", "2"},
	}
	for _, test := range tests {
		env := NewEnv()
		v, err := run(t, env, test.src)
		if err != nil {
			t.Errorf("%q: %v", test.src, err)
			continue
		}
		if got := Print(v); got != test.want {
			t.Errorf("%q: got %s want %s", test.src, got, test.want)
		}
	}
}

func TestEvalErrors(t *testing.T) {
	tests := []struct {
		src  string
		want error
	}{
		{"undefined-thing", ErrUnbound},
		{"(+ 1 :a)", ErrType},
		{"(/ 1 0)", ErrDivideByZero},
		{"(+ 9223372036854775807 1)", ErrOverflow},
		{"(* 9223372036854775807 2)", ErrOverflow},
		{"(inc 9223372036854775807)", ErrOverflow},
		{"(dec (- 0 9223372036854775807 1))", ErrOverflow},
		{"(- (- 0 9223372036854775807 1))", ErrOverflow},
		{"(/ (- 0 9223372036854775807 1) -1)", ErrOverflow},
		{"(1 2)", ErrNotFn},
		{"((fn [x] x))", ErrArity},
		{"(nth [1] 3)", ErrIndex},
		{"(let [a] a)", ErrSyntax},
		{"(defn loop [] (loop)) (loop)", ErrStackDepth},
		{"`x", ErrUnsupported},
		{"(other/x)", ErrUnbound},
	}
	for _, test := range tests {
		_, err := run(t, NewEnv(), test.src)
		if !errors.Is(err, test.want) {
			t.Errorf("%q: got %v want %v", test.src, err, test.want)
		}
	}
}

func TestNamespaces(t *testing.T) {
	env := NewEnv()
	if env.Current() != DefaultNamespace {
		t.Fatalf("current %s", env.Current())
	}
	if _, err := run(t, env, "(def x 1) (ns foo) (def y 2)"); err != nil {
		t.Fatal(err)
	}
	if env.Current() != "foo" {
		t.Errorf("current %s", env.Current())
	}
	if _, err := run(t, env, "x"); !errors.Is(err, ErrUnbound) {
		t.Errorf("x visible from foo: %v", err)
	}
	v, err := run(t, env, "(+ user/x y)")
	if err != nil || Print(v) != "3" {
		t.Errorf("got %v %v", v, err)
	}
	if _, err := run(t, env, "(in-ns 'user)"); err != nil {
		t.Fatal(err)
	}
	if env.Current() != "user" {
		t.Errorf("current %s", env.Current())
	}
	if got := env.Defs("foo"); len(got) != 1 || got[0] != "y" {
		t.Errorf("defs %v", got)
	}
}

func TestDefReturnsValue(t *testing.T) {
	v, err := run(t, NewEnv(), "(def x 1)")
	if err != nil || v != int64(1) {
		t.Errorf("got %v %v", v, err)
	}
}

func TestPrintln(t *testing.T) {
	var buf bytes.Buffer
	v, err := run(t, NewEnv(Output(&buf)), `(println "a" 1 [2])`)
	if err != nil || v != nil {
		t.Fatalf("got %v %v", v, err)
	}
	if buf.String() != "a 1 [2]\n" {
		t.Errorf("output %q", buf.String())
	}
}

func TestCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	n, err := parse.ReadString("(+ 1 2)")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Eval(ctx, n, NewEnv()); !errors.Is(err, context.Canceled) {
		t.Errorf("got %v", err)
	}
}

func TestEvalAsync(t *testing.T) {
	n, err := parse.ReadString("(+ 1 2)")
	if err != nil {
		t.Fatal(err)
	}
	done := make(chan any, 1)
	Interpreter{}.EvalAsync(context.Background(), n, NewEnv(), func(v any, err error) {
		if err != nil {
			done <- err
			return
		}
		done <- v
	})
	if got := <-done; got != int64(3) {
		t.Errorf("got %v", got)
	}
}

func TestRegistry(t *testing.T) {
	if err := Register(Lookup("+")); !errors.Is(err, ErrSymbolExists) {
		t.Errorf("got %v", err)
	}
	names := Builtins()
	for _, want := range []string{"+", "assoc", "println", "symbol"} {
		found := false
		for _, n := range names {
			found = found || n == want
		}
		if !found {
			t.Errorf("missing builtin %s", want)
		}
	}
}

func TestFromNative(t *testing.T) {
	v, err := FromNative(map[string]any{"b": []any{1, "x"}, "a": uint64(2)})
	if err != nil {
		t.Fatal(err)
	}
	if got := Print(v); got != `{:a 2, :b [1 "x"]}` {
		t.Errorf("got %s", got)
	}
}
