package soup

import (
	"context"
	"strings"
	"testing"

	"github.com/signadot/soup/soup/eval"
	"github.com/signadot/soup/soup/render"
	"github.com/signadot/soup/soup/repl"
	"github.com/signadot/soup/soup/tag"
)

var docs = []string{
	"(ns demo)\n\n(defn greet\n  [name]\n  (str \"hello, \" name))\n\n(greet \"soup\")",
	"{:a [1 2 #{3}]\n :b (fn [x]\n      x)}",
	"(def s \"line one\n   line two\")\n@x 'y ^:m z #_ w",
	"(+ 1",
	"",
}

func TestRefreshIdempotent(t *testing.T) {
	for _, doc := range docs {
		f1, err := Refresh(doc)
		if err != nil {
			t.Fatal(err)
		}
		f2, err := Refresh(doc)
		if err != nil {
			t.Fatal(err)
		}
		if f1.HTML != f2.HTML || f1.LineNumbers != f2.LineNumbers {
			t.Errorf("%q: markup differs between refreshes", doc)
		}
		f3, err := Refresh(f1.Text)
		if err != nil {
			t.Fatal(err)
		}
		if f3.HTML != f1.HTML {
			t.Errorf("%q: refreshing the canonical text changed markup", doc)
		}
	}
}

func TestRefreshContent(t *testing.T) {
	for _, doc := range docs {
		f, err := Refresh(doc)
		if err != nil {
			t.Fatal(err)
		}
		if got := render.StripMarkup(f.HTML); got != f.Text {
			t.Errorf("text content %q, want %q", got, f.Text)
		}
	}
	canonical := docs[0]
	f, err := Refresh(canonical)
	if err != nil {
		t.Fatal(err)
	}
	if got := render.StripMarkup(f.HTML); got != canonical {
		t.Errorf("canonical document changed to %q", got)
	}
}

func TestRefreshError(t *testing.T) {
	f, err := Refresh("(+ 1")
	if err != nil {
		t.Fatal(err)
	}
	var errs []tag.Tag
	for _, tg := range f.Tags {
		if tg.Kind == tag.Error {
			errs = append(errs, tg)
		}
	}
	if len(errs) != 1 || errs[0].Line != 1 || errs[0].Column != 5 {
		t.Fatalf("error tags %v", errs)
	}
	if !strings.Contains(f.HTML, `data-message="EOF while reading, starting at line 1"`) {
		t.Errorf("markup %s", f.HTML)
	}
}

func TestRefreshOptions(t *testing.T) {
	f, err := Refresh("(a)", Rainbow(false), ClassPrefix("s-"))
	if err != nil {
		t.Fatal(err)
	}
	if len(f.Colors) != 0 || strings.Contains(f.HTML, "style=") {
		t.Errorf("colours applied: %s", f.HTML)
	}
	if !strings.Contains(f.HTML, `class="s-delimiter"`) {
		t.Errorf("prefix missing: %s", f.HTML)
	}
	if f.LineNumbers != `<span class="s-line-number">1</span>` {
		t.Errorf("line numbers %s", f.LineNumbers)
	}
}

func TestOverlay(t *testing.T) {
	f, err := Refresh("(def x 1)\n(+ x 1)")
	if err != nil {
		t.Fatal(err)
	}
	rs, err := repl.Run(context.Background(), f.Elements(), eval.Interpreter{}, eval.NewEnv())
	if err != nil {
		t.Fatal(err)
	}
	got := Overlay(rs, repl.LineGeometry{LineHeight: 10})
	want := `<div class="result" style="top: 10px; height: 10px;">1</div>` +
		`<div class="result" style="top: 10px; height: 10px;">2</div>`
	if got != want {
		t.Errorf("got %s", got)
	}
}
