package token

import "testing"

func TestQuoted(t *testing.T) {
	for _, s := range []string{
		`"`,
		`'`,
		"\t\n\r\b\f",
		"∞∞",
		`\\"""`,
		`a\b`,
	} {
		do(s, t)
	}
}

func do(v string, t *testing.T) {
	q := Quote(v)
	uq, err := Unquote(q)
	if err != nil {
		t.Errorf("error unquoting %q (from %q): %v", q, v, err)
		return
	}
	if uq != v {
		t.Errorf("unquote(quote(%q)) = %q", v, uq)
	}
}

func TestUnquoteErrors(t *testing.T) {
	for _, s := range []string{
		`"\q"`,
		`"\u12"`,
		`"\uzzzz"`,
		`abc`,
	} {
		if _, err := Unquote(s); err == nil {
			t.Errorf("expected error unquoting %s", s)
		}
	}
}
