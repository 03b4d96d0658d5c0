package token

import (
	"io"
	"unicode"
	"unicode/utf8"
)

// Tokenizer provides stateful tokenization of a document, one token per
// call to Next.
type Tokenizer struct {
	d      []rune
	posDoc *PosDoc
	opt    *tokenOpts

	i, line, col int

	// rune offset of the first invalid utf8 sequence, or -1
	bad int
}

type tokenOpts struct {
	comments bool
}

type TokenOpt func(*tokenOpts)

// TokenComments makes the tokenizer return TComment tokens instead of
// skipping comments.
func TokenComments() TokenOpt {
	return func(o *tokenOpts) { o.comments = true }
}

// NewTokenizerFromBytes creates a Tokenizer over doc.
func NewTokenizerFromBytes(doc []byte, opts ...TokenOpt) *Tokenizer {
	opt := &tokenOpts{}
	for _, o := range opts {
		o(opt)
	}
	bad := -1
	if !utf8.Valid(doc) {
		n := 0
		for i := 0; i < len(doc); {
			r, sz := utf8.DecodeRune(doc[i:])
			if r == utf8.RuneError && sz == 1 {
				bad = n
				break
			}
			i += sz
			n++
		}
	}
	d := []rune(string(doc))
	return &Tokenizer{
		d:      d,
		posDoc: NewPosDoc(d),
		opt:    opt,
		line:   1,
		col:    1,
		bad:    bad,
	}
}

// Pos returns the current position, which is the end of input once Next
// has returned io.EOF.
func (t *Tokenizer) Pos() Pos {
	return t.posDoc.Pos(t.i, t.line, t.col)
}

func (t *Tokenizer) peek(k int) (rune, bool) {
	if t.i+k >= len(t.d) {
		return 0, false
	}
	return t.d[t.i+k], true
}

func (t *Tokenizer) advance() rune {
	r := t.d[t.i]
	t.i++
	if r == '\n' {
		t.line++
		t.col = 1
	} else {
		t.col++
	}
	return r
}

func (t *Tokenizer) token(tt TokenType, start Pos) *Token {
	return &Token{
		Type: tt,
		Pos:  start,
		End:  t.Pos(),
		Text: string(t.d[start.I:t.i]),
	}
}

func isSpace(r rune) bool {
	return r == ',' || unicode.IsSpace(r)
}

// isTerminating reports whether r ends a symbol, number or keyword.
func isTerminating(r rune) bool {
	if isSpace(r) {
		return true
	}
	switch r {
	case '"', ';', '@', '^', '`', '~', '(', ')', '[', ']', '{', '}', '\\':
		return true
	}
	return false
}

func (t *Tokenizer) skipLine() {
	for t.i < len(t.d) && t.d[t.i] != '\n' {
		t.advance()
	}
}

// Next returns the next token, or io.EOF at the end of input.
func (t *Tokenizer) Next() (*Token, error) {
	for {
		if t.bad >= 0 && t.i >= t.bad {
			return nil, NewTokenizeErr(ErrBadUTF8, t.Pos())
		}
		r, ok := t.peek(0)
		if !ok {
			return nil, io.EOF
		}
		if isSpace(r) {
			t.advance()
			continue
		}
		if r == ';' {
			start := t.Pos()
			t.skipLine()
			if t.opt.comments {
				return t.token(TComment, start), nil
			}
			continue
		}
		break
	}
	start := t.Pos()
	r := t.advance()
	switch r {
	case '(':
		return t.token(TLParen, start), nil
	case ')':
		return t.token(TRParen, start), nil
	case '[':
		return t.token(TLSquare, start), nil
	case ']':
		return t.token(TRSquare, start), nil
	case '{':
		return t.token(TLCurl, start), nil
	case '}':
		return t.token(TRCurl, start), nil
	case '"':
		return t.quoted(TString, start)
	case '\'':
		return t.token(TQuote, start), nil
	case '`':
		return t.token(TSyntaxQuote, start), nil
	case '~':
		if n, ok := t.peek(0); ok && n == '@' {
			t.advance()
			return t.token(TUnquoteSplice, start), nil
		}
		return t.token(TUnquote, start), nil
	case '@':
		return t.token(TDeref, start), nil
	case '^':
		return t.token(TMeta, start), nil
	case '\\':
		return t.char(start)
	case '#':
		return t.dispatch(start)
	}
	t.constituents()
	return t.classify(start)
}

func (t *Tokenizer) constituents() {
	for t.i < len(t.d) && !isTerminating(t.d[t.i]) {
		t.advance()
	}
}

func (t *Tokenizer) quoted(tt TokenType, start Pos) (*Token, error) {
	for {
		r, ok := t.peek(0)
		if !ok {
			return nil, UnterminatedErr("string", t.Pos())
		}
		t.advance()
		switch r {
		case '\\':
			if _, ok := t.peek(0); !ok {
				return nil, UnterminatedErr("string", t.Pos())
			}
			t.advance()
		case '"':
			tok := t.token(tt, start)
			if tt == TString {
				if _, err := Unquote(tok.Text); err != nil {
					return nil, NewTokenizeErr(err, start)
				}
			}
			return tok, nil
		}
	}
}

func (t *Tokenizer) char(start Pos) (*Token, error) {
	if _, ok := t.peek(0); !ok {
		return nil, UnterminatedErr("character", t.Pos())
	}
	t.advance()
	t.constituents()
	tok := t.token(TChar, start)
	if _, err := CharValue(tok.Text); err != nil {
		return nil, NewTokenizeErr(err, start)
	}
	return tok, nil
}

func (t *Tokenizer) dispatch(start Pos) (*Token, error) {
	r, ok := t.peek(0)
	if !ok {
		return nil, UnterminatedErr("", t.Pos())
	}
	switch r {
	case '{':
		t.advance()
		return t.token(TLSet, start), nil
	case '(':
		t.advance()
		return t.token(TLFn, start), nil
	case '"':
		t.advance()
		return t.quoted(TRegex, start)
	case '\'':
		t.advance()
		return t.token(TVar, start), nil
	case '_':
		t.advance()
		return t.token(TDiscard, start), nil
	case '!':
		t.skipLine()
		if t.opt.comments {
			return t.token(TComment, start), nil
		}
		return t.Next()
	}
	return nil, UnexpectedErr(ErrDispatch, string(r), start)
}

func (t *Tokenizer) classify(start Pos) (*Token, error) {
	text := string(t.d[start.I:t.i])
	switch {
	case text == "nil":
		return t.token(TNil, start), nil
	case text == "true":
		return t.token(TTrue, start), nil
	case text == "false":
		return t.token(TFalse, start), nil
	case isNumberStart(text):
		if _, _, err := ParseNumber(text); err != nil {
			return nil, NewTokenizeErr(err, start)
		}
		return t.token(TNumber, start), nil
	case text[0] == ':':
		if !validKeyword(text) {
			return nil, UnexpectedErr(ErrToken, text, start)
		}
		return t.token(TKeyword, start), nil
	}
	if !validSymbol(text) {
		return nil, UnexpectedErr(ErrToken, text, start)
	}
	return t.token(TSymbol, start), nil
}

// Tokenize tokenizes src, returning the tokens read before the first error
// along with that error.
func Tokenize(dst []Token, src []byte, opts ...TokenOpt) ([]Token, error) {
	tk := NewTokenizerFromBytes(src, opts...)
	for {
		tok, err := tk.Next()
		if err == io.EOF {
			return dst, nil
		}
		if err != nil {
			return dst, err
		}
		dst = append(dst, *tok)
	}
}
