package main

import (
	"context"
	"sync"

	"github.com/signadot/soup/soup/debug"
	"github.com/signadot/soup/soup/indent"
	"github.com/signadot/soup/soup/ir"
	"github.com/signadot/soup/soup/parse"
	"github.com/signadot/soup/soup/repl"
	"github.com/signadot/soup/soup/tag"
	"go.lsp.dev/protocol"
)

type documentStore struct {
	mu   sync.RWMutex
	docs map[string]*document
}

// document is read as the editor holds it, so positions of its nodes and
// tags are editor positions.
type document struct {
	uri     string
	content string
	version int32
	lines   []string
	nodes   []*ir.Node
	err     *parse.ParseError
	tags    []tag.Tag
}

func (ds *documentStore) get(uri string) *document {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	return ds.docs[uri]
}

func (ds *documentStore) put(uri string, content string, version int32) (*document, error) {
	nodes, pe := parse.ParseAll([]byte(content))
	tags := tag.Build(nodes, pe)
	if err := tag.Validate(tags); err != nil {
		return nil, err
	}
	doc := &document{
		uri:     uri,
		content: content,
		version: version,
		lines:   indent.Split(content),
		nodes:   nodes,
		err:     pe,
		tags:    tags,
	}
	ds.mu.Lock()
	defer ds.mu.Unlock()
	ds.docs[uri] = doc
	return doc, nil
}

func (ds *documentStore) remove(uri string) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	delete(ds.docs, uri)
}

// nodeAt returns the innermost node at the 0-based LSP position.
func (doc *document) nodeAt(pos protocol.Position) *ir.Node {
	line, col := int(pos.Line)+1, int(pos.Character)+1
	for _, n := range doc.nodes {
		if found := n.Find(line, col); found != nil {
			return found
		}
	}
	return nil
}

func (doc *document) elements() []repl.Element {
	return repl.Elements(doc.lines, doc.nodes)
}

func (s *Server) DidOpen(ctx context.Context, params *protocol.DidOpenTextDocumentParams) error {
	uri := string(params.TextDocument.URI)
	if _, err := s.docs.put(uri, params.TextDocument.Text, params.TextDocument.Version); err != nil {
		return err
	}
	s.publishDiagnostics(ctx, uri)
	return nil
}

func (s *Server) DidChange(ctx context.Context, params *protocol.DidChangeTextDocumentParams) error {
	uri := string(params.TextDocument.URI)
	doc := s.docs.get(uri)
	if doc == nil {
		return nil
	}

	content := doc.content
	for _, change := range params.ContentChanges {
		r := change.Range
		if r == (protocol.Range{}) {
			content = change.Text
			continue
		}
		rs := []rune(content)
		start := lineColToOffset(content, int(r.Start.Line), int(r.Start.Character))
		end := lineColToOffset(content, int(r.End.Line), int(r.End.Character))
		if start <= end && end <= len(rs) {
			content = string(rs[:start]) + change.Text + string(rs[end:])
		}
	}
	if debug.LSP() {
		debug.Logf("%s: change to v%d\n", uri, params.TextDocument.Version)
	}

	if _, err := s.docs.put(uri, content, params.TextDocument.Version); err != nil {
		return err
	}
	s.publishDiagnostics(ctx, uri)
	return nil
}

func (s *Server) DidClose(ctx context.Context, params *protocol.DidCloseTextDocumentParams) error {
	uri := string(params.TextDocument.URI)
	s.docs.remove(uri)
	s.evals.forget(uri)
	return nil
}

// lineColToOffset returns the rune offset of a 0-based line and column.
func lineColToOffset(content string, line, col int) int {
	currentLine := 0
	currentCol := 0
	offset := 0
	for _, r := range content {
		if currentLine == line && currentCol == col {
			return offset
		}
		if r == '\n' {
			if currentLine == line {
				return offset
			}
			currentLine++
			currentCol = 0
		} else {
			currentCol++
		}
		offset++
	}
	return offset
}
