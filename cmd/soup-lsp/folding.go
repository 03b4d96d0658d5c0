package main

import (
	"context"

	"github.com/signadot/soup/soup/tag"
	"go.lsp.dev/protocol"
)

// FoldingRanges folds every collection spanning more than one line.
func (s *Server) FoldingRanges(ctx context.Context, params *protocol.FoldingRangeParams) ([]protocol.FoldingRange, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil {
		return nil, nil
	}
	return foldingRanges(doc), nil
}

func foldingRanges(doc *document) []protocol.FoldingRange {
	res := []protocol.FoldingRange{}
	for _, t := range doc.tags {
		if t.Kind != tag.Begin || t.Node == nil || !t.Node.Type.IsColl() {
			continue
		}
		span := t.Node.Span
		if span.EndLine == span.Line {
			continue
		}
		res = append(res, protocol.FoldingRange{
			StartLine:      uint32(span.Line - 1),
			StartCharacter: uint32(span.Column - 1),
			EndLine:        uint32(span.EndLine - 1),
			EndCharacter:   uint32(span.EndColumn - 1),
		})
	}
	return res
}
