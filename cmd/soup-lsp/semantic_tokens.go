package main

import (
	"context"
	"sort"

	"github.com/signadot/soup/soup/ir"
	"github.com/signadot/soup/soup/tag"
	"go.lsp.dev/protocol"
)

// tokenTypes is the legend; semantic tokens refer to it by index.
var tokenTypes = []protocol.SemanticTokenTypes{
	protocol.SemanticTokenKeyword,
	protocol.SemanticTokenString,
	protocol.SemanticTokenNumber,
	protocol.SemanticTokenEnumMember,
	protocol.SemanticTokenVariable,
	protocol.SemanticTokenFunction,
	protocol.SemanticTokenRegexp,
	protocol.SemanticTokenOperator,
}

var tokenModifiers = []protocol.SemanticTokenModifiers{
	protocol.SemanticTokenModifierDefinition,
	protocol.SemanticTokenModifierDefaultLibrary,
}

const (
	modDefinition uint32 = 1 << iota
	modDefaultLibrary
)

func tokenIndex(t protocol.SemanticTokenTypes) uint32 {
	for i, tt := range tokenTypes {
		if tt == t {
			return uint32(i)
		}
	}
	return 0
}

type tokenInfo struct {
	line      uint32
	character uint32
	length    uint32
	tokenType uint32
	modifiers uint32
}

func (s *Server) SemanticTokensFull(ctx context.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil {
		return nil, nil
	}
	return &protocol.SemanticTokens{Data: encodeTokens(collectTokens(doc))}, nil
}

func (s *Server) SemanticTokensRange(ctx context.Context, params *protocol.SemanticTokensRangeParams) (*protocol.SemanticTokens, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil {
		return nil, nil
	}
	var in []tokenInfo
	for _, t := range collectTokens(doc) {
		if t.line < params.Range.Start.Line || t.line > params.Range.End.Line {
			continue
		}
		in = append(in, t)
	}
	return &protocol.SemanticTokens{Data: encodeTokens(in)}, nil
}

// collectTokens finds a token for each atom and delimiter of doc, in
// document order.
func collectTokens(doc *document) []tokenInfo {
	var res []tokenInfo
	for _, t := range doc.tags {
		n := t.Node
		if n == nil {
			continue
		}
		switch t.Kind {
		case tag.Begin:
			if n.Type.IsColl() {
				continue
			}
			typ, mods, ok := atomToken(n)
			if !ok {
				continue
			}
			res = append(res, tokenInfo{
				line:      uint32(n.Span.Line - 1),
				character: uint32(n.Span.Column - 1),
				length:    uint32(firstLineWidth(doc.lines, n.Span)),
				tokenType: tokenIndex(typ),
				modifiers: mods,
			})
		case tag.Delimiter:
			width := 1
			if t.Line == n.Span.Line && t.Column == n.Span.Column {
				width = len([]rune(n.Open))
			}
			res = append(res, tokenInfo{
				line:      uint32(t.Line - 1),
				character: uint32(t.Column - 1),
				length:    uint32(width),
				tokenType: tokenIndex(protocol.SemanticTokenOperator),
			})
		}
	}
	sort.SliceStable(res, func(i, j int) bool {
		if res[i].line != res[j].line {
			return res[i].line < res[j].line
		}
		return res[i].character < res[j].character
	})
	return res
}

// firstLineWidth is the width of span on its first line.
func firstLineWidth(lines []string, span ir.Span) int {
	if span.EndLine == span.Line {
		return span.EndColumn - span.Column
	}
	if span.Line-1 >= len(lines) {
		return 0
	}
	return len([]rune(lines[span.Line-1])) - (span.Column - 1)
}

func atomToken(n *ir.Node) (protocol.SemanticTokenTypes, uint32, bool) {
	switch n.Type {
	case ir.NilType, ir.BoolType:
		return protocol.SemanticTokenKeyword, 0, true
	case ir.StringType, ir.CharType:
		return protocol.SemanticTokenString, 0, true
	case ir.NumberType:
		return protocol.SemanticTokenNumber, 0, true
	case ir.KeywordType:
		return protocol.SemanticTokenEnumMember, 0, true
	case ir.RegexType:
		return protocol.SemanticTokenRegexp, 0, true
	case ir.SymbolType:
		var mods uint32
		if isBuiltin(n.String) {
			mods |= modDefaultLibrary
		}
		if isDefined(n) {
			mods |= modDefinition
		}
		if isHead(n) {
			return protocol.SemanticTokenFunction, mods, true
		}
		return protocol.SemanticTokenVariable, mods, true
	}
	return "", 0, false
}

// isHead reports whether n is the operator of a list.
func isHead(n *ir.Node) bool {
	p := n.Parent
	return p != nil && p.Type == ir.ListType && n.ParentIndex == 0
}

// isDefined reports whether n is the name in a def or defn form.
func isDefined(n *ir.Node) bool {
	p := n.Parent
	if p == nil || p.Type != ir.ListType || n.ParentIndex != 1 {
		return false
	}
	head := p.Values[0]
	return head.Type == ir.SymbolType && (head.String == "def" || head.String == "defn")
}

// encodeTokens delta encodes tokens as the protocol requires.
func encodeTokens(tokens []tokenInfo) []uint32 {
	data := make([]uint32, 0, len(tokens)*5)
	var prevLine, prevChar uint32
	for _, t := range tokens {
		deltaLine := t.line - prevLine
		deltaChar := t.character
		if deltaLine == 0 {
			deltaChar = t.character - prevChar
		}
		data = append(data, deltaLine, deltaChar, t.length, t.tokenType, t.modifiers)
		prevLine, prevChar = t.line, t.character
	}
	return data
}
