package main

import (
	"context"

	"github.com/signadot/soup/soup/indent"
	"go.lsp.dev/protocol"
)

func (s *Server) Formatting(ctx context.Context, params *protocol.DocumentFormattingParams) ([]protocol.TextEdit, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil {
		return nil, nil
	}
	return formatEdits(doc.content), nil
}

// formatEdits replaces each line whose indentation differs from the
// derived one.
func formatEdits(content string) []protocol.TextEdit {
	old := indent.Split(content)
	formatted := indent.Split(indent.Reindent(content))
	edits := []protocol.TextEdit{}
	for i, line := range old {
		if i >= len(formatted) || formatted[i] == line {
			continue
		}
		edits = append(edits, protocol.TextEdit{
			Range: protocol.Range{
				Start: protocol.Position{Line: uint32(i)},
				End:   protocol.Position{Line: uint32(i), Character: uint32(indent.Leading(line))},
			},
			NewText: string([]rune(formatted[i])[:indent.Leading(formatted[i])]),
		})
	}
	return edits
}
