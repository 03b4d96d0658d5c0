package main

import (
	"context"

	"github.com/signadot/soup/soup/tag"
	"go.lsp.dev/protocol"
)

func (s *Server) publishDiagnostics(ctx context.Context, uri string) {
	doc := s.docs.get(uri)
	if doc == nil {
		return
	}

	diagnostics := validateDocument(doc)

	if s.conn != nil {
		s.conn.Notify(ctx, protocol.MethodTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
			URI:         protocol.DocumentURI(uri),
			Diagnostics: diagnostics,
		})
	}
}

// validateDocument reports each Error tag of doc as a one character
// diagnostic.
func validateDocument(doc *document) []protocol.Diagnostic {
	diagnostics := []protocol.Diagnostic{}
	for _, t := range doc.tags {
		if t.Kind != tag.Error {
			continue
		}
		start := protocol.Position{Line: uint32(t.Line - 1), Character: uint32(t.Column - 1)}
		end := start
		end.Character++
		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range:    protocol.Range{Start: start, End: end},
			Severity: protocol.DiagnosticSeverityError,
			Message:  t.Message,
			Source:   "soup",
		})
	}
	return diagnostics
}
