// Package parse reads Lisp source into positioned ir nodes.
package parse

import (
	"errors"
	"fmt"
	"io"

	"github.com/signadot/soup/soup/debug"
	"github.com/signadot/soup/soup/ir"
	"github.com/signadot/soup/soup/token"
)

// Reader reads one top-level form per call to Next.
type Reader struct {
	tk   *token.Tokenizer
	opts *parseOpts
	err  error
}

func NewReader(src []byte, opts ...ParseOption) *Reader {
	pOpts := &parseOpts{}
	for _, f := range opts {
		f(pOpts)
	}
	return &Reader{
		tk:   token.NewTokenizerFromBytes(src),
		opts: pOpts,
	}
}

// frame is a form under construction.
type frame struct {
	node  *ir.Node
	open  *token.Token
	close token.TokenType
	// want is the number of forms a macro frame needs; 0 for collections.
	want    int
	discard bool
}

// Next returns the next top-level form. At the end of input it returns
// io.EOF. On malformed input it returns a *ParseError, and every later
// call returns the same error.
func (r *Reader) Next() (node *ir.Node, err error) {
	if r.err != nil {
		return nil, r.err
	}
	defer func() {
		if x := recover(); x != nil {
			pos := r.tk.Pos()
			node = nil
			err = &ParseError{
				Line:    pos.Line,
				Column:  pos.Col,
				Message: fmt.Sprint(x),
				Err:     errInternal,
			}
		}
		if err != nil {
			r.err = err
		}
		if debug.Read() {
			debug.Logf("read %v %v\n", node, err)
		}
	}()
	return r.read()
}

func (r *Reader) read() (*ir.Node, error) {
	var stack []*frame
	for {
		tok, err := r.tk.Next()
		if err == io.EOF {
			if len(stack) == 0 {
				return nil, io.EOF
			}
			return nil, r.eofErr(stack)
		}
		if err != nil {
			return nil, tokErr(err)
		}
		var done *ir.Node
		switch {
		case tok.Type == token.TComment:
			continue
		case tok.Type.IsOpen():
			if r.opts.maxDepth > 0 && len(stack) >= r.opts.maxDepth {
				return nil, posErr(tok.Pos, fmt.Sprintf("nesting deeper than %d", r.opts.maxDepth))
			}
			stack = append(stack, &frame{
				node:  openNode(tok),
				open:  tok,
				close: tok.Type.Closer(),
			})
			continue
		case tok.Type.IsClose():
			if len(stack) == 0 || stack[len(stack)-1].want != 0 {
				return nil, posErr(tok.Pos, "Unmatched delimiter: "+tok.Text)
			}
			top := stack[len(stack)-1]
			if top.close != tok.Type {
				return nil, posErr(tok.Pos, fmt.Sprintf("Unmatched delimiter: %s, expected: %s", tok.Text, closeText(top.close)))
			}
			stack = stack[:len(stack)-1]
			n := top.node
			n.Span.EndLine, n.Span.EndColumn = tok.End.Line, tok.End.Col
			if n.Type == ir.MapType {
				if err := pairUp(n); err != nil {
					return nil, &ParseError{
						Line:    n.Span.Line,
						Column:  n.Span.Column,
						Message: "Map literal must contain an even number of forms",
						Err:     err,
					}
				}
			}
			done = n
		case tok.Type.IsMacro():
			f := &frame{
				node: ir.Macro(tok.Text).WithSpan(ir.Span{Line: tok.Pos.Line, Column: tok.Pos.Col}),
				open: tok,
				want: 1,
			}
			switch tok.Type {
			case token.TMeta:
				f.want = 2
			case token.TDiscard:
				f.discard = true
			}
			stack = append(stack, f)
			continue
		default:
			n, err := scalar(tok)
			if err != nil {
				return nil, err
			}
			done = n
		}
		// hand the finished form to the enclosing frames
		for done != nil {
			if len(stack) == 0 {
				return done, nil
			}
			top := stack[len(stack)-1]
			if top.want == 0 {
				top.node.Append(done)
				done = nil
				continue
			}
			if top.discard {
				stack = stack[:len(stack)-1]
				done = nil
				continue
			}
			top.node.Append(done)
			if len(top.node.Values) < top.want {
				done = nil
				continue
			}
			stack = stack[:len(stack)-1]
			top.node.Span.EndLine = done.Span.EndLine
			top.node.Span.EndColumn = done.Span.EndColumn
			done = top.node
		}
	}
}

func (r *Reader) eofErr(stack []*frame) error {
	pos := r.tk.Pos()
	top := stack[len(stack)-1]
	if top.want != 0 {
		return posErr(pos, "EOF while reading")
	}
	return posErr(pos, fmt.Sprintf("EOF while reading, starting at line %d", top.open.Pos.Line))
}

func posErr(p token.Pos, msg string) *ParseError {
	return &ParseError{Line: p.Line, Column: p.Col, Message: msg}
}

func tokErr(err error) error {
	var te *token.TokenizeErr
	if !errors.As(err, &te) {
		return &ParseError{Line: 1, Column: 1, Message: err.Error(), Err: err}
	}
	return &ParseError{
		Line:    te.Pos.Line,
		Column:  te.Pos.Col,
		Message: te.Err.Error(),
		Err:     err,
	}
}

func closeText(t token.TokenType) string {
	switch t {
	case token.TRSquare:
		return "]"
	case token.TRCurl:
		return "}"
	default:
		return ")"
	}
}

func openNode(tok *token.Token) *ir.Node {
	n := &ir.Node{
		Open: tok.Text,
		Span: ir.Span{Line: tok.Pos.Line, Column: tok.Pos.Col},
	}
	switch tok.Type {
	case token.TLSquare:
		n.Type = ir.VectorType
	case token.TLCurl:
		n.Type = ir.MapType
	case token.TLSet:
		n.Type = ir.SetType
	default:
		n.Type = ir.ListType
	}
	return n
}

// pairUp groups the children of a map node into pair nodes.
func pairUp(n *ir.Node) error {
	m, err := ir.Map(n.Values...)
	if err != nil {
		return err
	}
	n.Values = nil
	n.Append(m.Values...)
	return nil
}

func scalar(tok *token.Token) (*ir.Node, error) {
	span := ir.Span{
		Line:      tok.Pos.Line,
		Column:    tok.Pos.Col,
		EndLine:   tok.End.Line,
		EndColumn: tok.End.Col,
	}
	var n *ir.Node
	switch tok.Type {
	case token.TNil:
		n = ir.Nil()
	case token.TTrue:
		n = ir.FromBool(true)
	case token.TFalse:
		n = ir.FromBool(false)
	case token.TString:
		n = ir.FromString(tok.String())
	case token.TNumber:
		i, f, err := token.ParseNumber(tok.Text)
		if err != nil {
			return nil, tokErr(token.NewTokenizeErr(err, tok.Pos))
		}
		n = &ir.Node{Type: ir.NumberType, Number: tok.Text, Int64: i, Float64: f}
	case token.TKeyword:
		n = ir.Keyword(tok.Text[1:])
	case token.TSymbol:
		n = ir.Symbol(tok.Text)
	case token.TChar:
		n = &ir.Node{Type: ir.CharType, String: tok.Text}
	case token.TRegex:
		n = &ir.Node{Type: ir.RegexType, String: tok.Text[2 : len(tok.Text)-1]}
	default:
		return nil, fmt.Errorf("%w: unexpected token %s", errInternal, tok.Info())
	}
	return n.WithSpan(span), nil
}
