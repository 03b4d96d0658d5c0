package parse

import (
	"errors"
	"fmt"
)

var (
	errInternal = errors.New("internal parse error")
	ErrParse    = errors.New("parse error")
	ErrTrailing = fmt.Errorf("%w: more than one form", ErrParse)
	ErrEmpty    = fmt.Errorf("%w: no form", ErrParse)
)

// ParseError is a recoverable reader failure at a source position. The
// reader does not continue past it.
type ParseError struct {
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s (line %d, column %d)", e.Message, e.Line, e.Column)
}

func (e *ParseError) Unwrap() error {
	if e.Err == nil {
		return ErrParse
	}
	return e.Err
}
