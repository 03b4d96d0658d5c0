package token

import "fmt"

type TokenType int

const (
	TLParen TokenType = iota
	TRParen
	TLSquare
	TRSquare
	TLCurl
	TRCurl
	TLSet
	TLFn
	TString
	TRegex
	TNumber
	TKeyword
	TSymbol
	TChar
	TNil
	TTrue
	TFalse
	TQuote
	TSyntaxQuote
	TUnquote
	TUnquoteSplice
	TDeref
	TMeta
	TVar
	TDiscard
	TComment
)

func (t TokenType) String() string {
	return map[TokenType]string{
		TLParen:        "TLParen",
		TRParen:        "TRParen",
		TLSquare:       "TLSquare",
		TRSquare:       "TRSquare",
		TLCurl:         "TLCurl",
		TRCurl:         "TRCurl",
		TLSet:          "TLSet",
		TLFn:           "TLFn",
		TString:        "TString",
		TRegex:         "TRegex",
		TNumber:        "TNumber",
		TKeyword:       "TKeyword",
		TSymbol:        "TSymbol",
		TChar:          "TChar",
		TNil:           "TNil",
		TTrue:          "TTrue",
		TFalse:         "TFalse",
		TQuote:         "TQuote",
		TSyntaxQuote:   "TSyntaxQuote",
		TUnquote:       "TUnquote",
		TUnquoteSplice: "TUnquoteSplice",
		TDeref:         "TDeref",
		TMeta:          "TMeta",
		TVar:           "TVar",
		TDiscard:       "TDiscard",
		TComment:       "TComment",
	}[t]
}

// IsOpen reports whether t opens a collection.
func (t TokenType) IsOpen() bool {
	switch t {
	case TLParen, TLSquare, TLCurl, TLSet, TLFn:
		return true
	}
	return false
}

// IsClose reports whether t closes a collection.
func (t TokenType) IsClose() bool {
	switch t {
	case TRParen, TRSquare, TRCurl:
		return true
	}
	return false
}

// IsMacro reports whether t is a reader macro prefix.
func (t TokenType) IsMacro() bool {
	switch t {
	case TQuote, TSyntaxQuote, TUnquote, TUnquoteSplice, TDeref, TMeta, TVar, TDiscard:
		return true
	}
	return false
}

// Closer returns the token type closing a collection opened by t.
func (t TokenType) Closer() TokenType {
	switch t {
	case TLSquare:
		return TRSquare
	case TLCurl, TLSet:
		return TRCurl
	default:
		return TRParen
	}
}

type Token struct {
	Type TokenType
	Pos  Pos
	// End is the position just after the last rune of the token.
	End  Pos
	Text string
}

func (t *Token) Info() string {
	return fmt.Sprintf("%s %s", t.Type, t.Pos.String())
}

// String returns the decoded value of string tokens and the source text
// of every other token.
func (t *Token) String() string {
	switch t.Type {
	case TString:
		s, err := Unquote(t.Text)
		if err != nil {
			return t.Text
		}
		return s
	default:
		return t.Text
	}
}
