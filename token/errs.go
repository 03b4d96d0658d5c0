package token

import (
	"errors"
	"fmt"
)

var (
	ErrBadUTF8      = errors.New("bad utf8")
	ErrUnterminated = errors.New("EOF while reading")
	ErrBadEscape    = errors.New("unsupported escape character")
	ErrBadUnicode   = errors.New("invalid unicode escape")
	ErrBadChar      = errors.New("unsupported character")
	ErrNumber       = errors.New("invalid number")
	ErrDispatch     = errors.New("no dispatch macro")
	ErrToken        = errors.New("invalid token")
)

type TokenizeErr struct {
	Err error
	Pos Pos
}

func (t *TokenizeErr) Unwrap() error {
	return t.Err
}

func NewTokenizeErr(e error, p Pos) *TokenizeErr {
	return &TokenizeErr{Err: e, Pos: p}
}

func (e *TokenizeErr) Error() string {
	return fmt.Sprintf("%s at %s", e.Err.Error(), e.Pos.String())
}

func UnterminatedErr(what string, p Pos) error {
	if what == "" {
		return NewTokenizeErr(ErrUnterminated, p)
	}
	return NewTokenizeErr(fmt.Errorf("%w %s", ErrUnterminated, what), p)
}

func UnexpectedErr(base error, what string, p Pos) error {
	return NewTokenizeErr(fmt.Errorf("%w: %s", base, what), p)
}
