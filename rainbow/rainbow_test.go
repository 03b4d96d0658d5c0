package rainbow

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/soup/soup/parse"
	"github.com/signadot/soup/soup/tag"
)

func TestPeriodic(t *testing.T) {
	if len(DefaultPalette) < 8 {
		t.Fatalf("palette has %d colours", len(DefaultPalette))
	}
	for d := 0; d < 40; d++ {
		if Color(d) != Color(d+len(DefaultPalette)) {
			t.Errorf("depth %d: %s != %s", d, Color(d), Color(d+len(DefaultPalette)))
		}
	}
	seen := map[string]bool{}
	for _, c := range DefaultPalette {
		if seen[c] {
			t.Errorf("duplicate colour %s", c)
		}
		seen[c] = true
		if _, _, _, ok := RGB(c); !ok {
			t.Errorf("no rgb for %s", c)
		}
	}
}

func TestColorize(t *testing.T) {
	nodes, pe := parse.ParseAll([]byte("(a [b {:c #{d}}]) (e)"))
	if pe != nil {
		t.Fatal(pe)
	}
	got := Colorize(tag.Build(nodes, pe))
	want := Colors{
		{1, 1}:  Color(0),
		{1, 17}: Color(0),
		{1, 4}:  Color(1),
		{1, 16}: Color(1),
		{1, 7}:  Color(2),
		{1, 15}: Color(2),
		{1, 11}: Color(3),
		{1, 14}: Color(3),
		{1, 19}: Color(0),
		{1, 21}: Color(0),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("colours (-want +got):\n%s", diff)
	}
}

func TestRGB(t *testing.T) {
	r, g, b, ok := RGB("#0a10ff")
	if !ok || r != 10 || g != 16 || b != 255 {
		t.Errorf("got %d %d %d %v", r, g, b, ok)
	}
	if _, _, _, ok := RGB("nocolour"); ok {
		t.Error("unexpected colour")
	}
}
