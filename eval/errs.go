package eval

import "errors"

var (
	ErrUnbound      = errors.New("unable to resolve symbol")
	ErrArity        = errors.New("wrong number of args")
	ErrNotFn        = errors.New("not a function")
	ErrType         = errors.New("wrong type")
	ErrDivideByZero = errors.New("divide by zero")
	ErrOverflow     = errors.New("integer overflow")
	ErrSyntax       = errors.New("syntax error")
	ErrUnsupported  = errors.New("unsupported form")
	ErrIndex        = errors.New("index out of bounds")
	ErrStackDepth   = errors.New("stack overflow")
	ErrSymbolExists = errors.New("symbol exists")
)
