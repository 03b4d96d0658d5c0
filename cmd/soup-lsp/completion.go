package main

import (
	"context"
	"sort"
	"strings"

	"github.com/signadot/soup/soup/eval"
	"github.com/signadot/soup/soup/indent"
	"github.com/signadot/soup/soup/ir"
	"go.lsp.dev/protocol"
)

func (s *Server) Completion(ctx context.Context, params *protocol.CompletionParams) (*protocol.CompletionList, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil {
		return nil, nil
	}
	prefix := wordBefore(doc.content, params.Position)
	return &protocol.CompletionList{
		Items: completions(doc, prefix),
	}, nil
}

// wordBefore returns the symbol characters just before pos.
func wordBefore(content string, pos protocol.Position) string {
	lines := indent.Split(content)
	if int(pos.Line) >= len(lines) {
		return ""
	}
	line := []rune(lines[pos.Line])
	end := min(int(pos.Character), len(line))
	start := end
	for start > 0 && isSymbolRune(line[start-1]) {
		start--
	}
	return string(line[start:end])
}

func isSymbolRune(r rune) bool {
	if indent.IsSpace(r) {
		return false
	}
	switch r {
	case '(', ')', '[', ']', '{', '}', '"', '\'', '`', ',', ';', '@', '^', '~', '#':
		return false
	}
	return true
}

func completions(doc *document, prefix string) []protocol.CompletionItem {
	items := []protocol.CompletionItem{}
	seen := map[string]bool{}
	add := func(names []string, kind protocol.CompletionItemKind, detail string) {
		for _, name := range names {
			if seen[name] || !strings.HasPrefix(name, prefix) {
				continue
			}
			seen[name] = true
			items = append(items, protocol.CompletionItem{
				Label:  name,
				Kind:   kind,
				Detail: detail,
			})
		}
	}
	add(documentDefs(doc.nodes), protocol.CompletionItemKindVariable, "defined in document")
	add(eval.SpecialForms(), protocol.CompletionItemKindKeyword, "special form")
	add(eval.Builtins(), protocol.CompletionItemKindFunction, "builtin")
	return items
}

// documentDefs returns the sorted names bound by top-level def and defn
// forms.
func documentDefs(nodes []*ir.Node) []string {
	var res []string
	for _, n := range nodes {
		if n.Type != ir.ListType || len(n.Values) < 2 {
			continue
		}
		head, name := n.Values[0], n.Values[1]
		if head.Type != ir.SymbolType || name.Type != ir.SymbolType {
			continue
		}
		switch head.String {
		case "def", "defn":
			res = append(res, name.String)
		}
	}
	sort.Strings(res)
	return res
}

func isBuiltin(name string) bool {
	return eval.Lookup(name) != nil
}
