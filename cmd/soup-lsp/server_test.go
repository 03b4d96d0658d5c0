package main

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/google/go-cmp/cmp"
	"go.lsp.dev/protocol"
)

const testURI = "file:///test.clj"

func open(t *testing.T, text string) *Server {
	t.Helper()
	s := NewServer(nil)
	err := s.DidOpen(context.Background(), &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: testURI, Text: text, Version: 1},
	})
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func change(t *testing.T, s *Server, text string, version int32) {
	t.Helper()
	params := &protocol.DidChangeTextDocumentParams{
		ContentChanges: []protocol.TextDocumentContentChangeEvent{{Text: text}},
	}
	params.TextDocument.URI = testURI
	params.TextDocument.Version = version
	if err := s.DidChange(context.Background(), params); err != nil {
		t.Fatal(err)
	}
}

func TestDiagnostics(t *testing.T) {
	s := open(t, "(+ 1")
	ds := validateDocument(s.docs.get(testURI))
	if len(ds) != 1 {
		t.Fatalf("got %d diagnostics", len(ds))
	}
	want := protocol.Range{
		Start: protocol.Position{Line: 0, Character: 4},
		End:   protocol.Position{Line: 0, Character: 5},
	}
	if diff := cmp.Diff(want, ds[0].Range); diff != "" {
		t.Errorf("range (-want +got):\n%s", diff)
	}
	if ds[0].Message != "EOF while reading, starting at line 1" {
		t.Errorf("message %q", ds[0].Message)
	}
	change(t, s, "(+ 1)", 2)
	if ds := validateDocument(s.docs.get(testURI)); len(ds) != 0 {
		t.Errorf("unexpected diagnostics %v", ds)
	}
}

func TestFormatEdits(t *testing.T) {
	got := formatEdits("(a\nb)\n   (c)")
	want := []protocol.TextEdit{
		{
			Range: protocol.Range{
				Start: protocol.Position{Line: 1},
				End:   protocol.Position{Line: 1},
			},
			NewText: "  ",
		},
		{
			Range: protocol.Range{
				Start: protocol.Position{Line: 2},
				End:   protocol.Position{Line: 2, Character: 3},
			},
			NewText: "",
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("edits (-want +got):\n%s", diff)
	}
	if got := formatEdits("(a\n  b)"); len(got) != 0 {
		t.Errorf("canonical text got edits %v", got)
	}
}

func TestFoldingRanges(t *testing.T) {
	s := open(t, "(defn f\n  [x]\n  x)\n(g)")
	got := foldingRanges(s.docs.get(testURI))
	if len(got) != 1 {
		t.Fatalf("got %v", got)
	}
	if got[0].StartLine != 0 || got[0].EndLine != 2 {
		t.Errorf("range %v", got[0])
	}
}

func TestSemanticTokens(t *testing.T) {
	s := open(t, "(foo :k 1)")
	got := encodeTokens(collectTokens(s.docs.get(testURI)))
	op := tokenIndex(protocol.SemanticTokenOperator)
	want := []uint32{
		0, 0, 1, op, 0,
		0, 1, 3, tokenIndex(protocol.SemanticTokenFunction), 0,
		0, 4, 2, tokenIndex(protocol.SemanticTokenEnumMember), 0,
		0, 3, 1, tokenIndex(protocol.SemanticTokenNumber), 0,
		0, 1, 1, op, 0,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("tokens (-want +got):\n%s", diff)
	}
}

func TestSemanticTokensDefinition(t *testing.T) {
	s := open(t, "(def x\n  (str 1))")
	toks := collectTokens(s.docs.get(testURI))
	var x, str *tokenInfo
	for i := range toks {
		switch {
		case toks[i].line == 0 && toks[i].character == 5:
			x = &toks[i]
		case toks[i].line == 1 && toks[i].character == 3:
			str = &toks[i]
		}
	}
	if x == nil || x.modifiers&modDefinition == 0 {
		t.Errorf("x token %+v", x)
	}
	if str == nil || str.modifiers&modDefaultLibrary == 0 || str.tokenType != tokenIndex(protocol.SemanticTokenFunction) {
		t.Errorf("str token %+v", str)
	}
}

func TestHover(t *testing.T) {
	s := open(t, "(defn f [x] x)")
	params := &protocol.HoverParams{}
	params.TextDocument.URI = testURI
	params.Position = protocol.Position{Line: 0, Character: 9}
	h, err := s.Hover(context.Background(), params)
	if err != nil {
		t.Fatal(err)
	}
	if h == nil {
		t.Fatal("no hover")
	}
	for _, want := range []string{"**Form:** symbol", "**Depth:** 2"} {
		if !strings.Contains(h.Contents.Value, want) {
			t.Errorf("missing %q in %q", want, h.Contents.Value)
		}
	}
	params.Position = protocol.Position{Line: 0, Character: 8}
	h, err = s.Hover(context.Background(), params)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(h.Contents.Value, "vector `[`") {
		t.Errorf("hover on [ = %q", h.Contents.Value)
	}
}

func TestCompletion(t *testing.T) {
	s := open(t, "(def answer 1)\n(an")
	params := &protocol.CompletionParams{}
	params.TextDocument.URI = testURI
	params.Position = protocol.Position{Line: 1, Character: 3}
	list, err := s.Completion(context.Background(), params)
	if err != nil {
		t.Fatal(err)
	}
	labels := map[string]protocol.CompletionItemKind{}
	for _, it := range list.Items {
		if !strings.HasPrefix(it.Label, "an") {
			t.Errorf("unexpected item %q", it.Label)
		}
		labels[it.Label] = it.Kind
	}
	if labels["answer"] != protocol.CompletionItemKindVariable {
		t.Errorf("answer: %v", labels)
	}
	if labels["and"] != protocol.CompletionItemKindKeyword {
		t.Errorf("and: %v", labels)
	}
}

func TestWordBefore(t *testing.T) {
	tests := []struct {
		line string
		col  uint32
		want string
	}{
		{"(map inc", 8, "inc"},
		{"(map inc", 4, "map"},
		{"(", 1, ""},
		{"'(:a", 4, ":a"},
	}
	for _, test := range tests {
		got := wordBefore(test.line, protocol.Position{Character: test.col})
		if got != test.want {
			t.Errorf("wordBefore(%q, %d) = %q want %q", test.line, test.col, got, test.want)
		}
	}
}

func TestEvalOverlayPatches(t *testing.T) {
	s := open(t, "(def x 1)\n(+ x 1)")
	ctx := context.Background()
	p, err := s.evalDocument(ctx, testURI)
	if err != nil {
		t.Fatal(err)
	}
	state, err := jsonpatch.MergePatch([]byte("{}"), p.Patch)
	if err != nil {
		t.Fatal(err)
	}
	var got overlay
	if err := json.Unmarshal(state, &got); err != nil {
		t.Fatal(err)
	}
	want := overlay{
		URI:     testURI,
		Version: 1,
		Results: map[string]overlayResult{
			"1:1-1:10": {Text: "1", Top: 16, Height: 16},
			"2:1-2:8":  {Text: "2", Top: 16, Height: 16},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("overlay (-want +got):\n%s", diff)
	}

	change(t, s, "(def x 1)\n(+ x 2)", 2)
	p, err = s.evalDocument(ctx, testURI)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(p.Patch), "1:1-1:10") {
		t.Errorf("patch repeats unchanged result: %s", p.Patch)
	}
	state, err = jsonpatch.MergePatch(state, p.Patch)
	if err != nil {
		t.Fatal(err)
	}
	got = overlay{}
	if err := json.Unmarshal(state, &got); err != nil {
		t.Fatal(err)
	}
	if got.Version != 2 || got.Results["2:1-2:8"].Text != "3" || got.Results["1:1-1:10"].Text != "1" {
		t.Errorf("patched overlay %+v", got)
	}
}

func TestLineColToOffset(t *testing.T) {
	content := "ab\ncd\n"
	tests := []struct{ line, col, want int }{
		{0, 0, 0},
		{0, 2, 2},
		{1, 1, 4},
		{1, 9, 5},
		{2, 0, 6},
	}
	for _, test := range tests {
		if got := lineColToOffset(content, test.line, test.col); got != test.want {
			t.Errorf("(%d, %d) = %d want %d", test.line, test.col, got, test.want)
		}
	}
}
