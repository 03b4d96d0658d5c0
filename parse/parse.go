package parse

import (
	"errors"
	"io"

	"github.com/signadot/soup/soup/ir"
)

// ParseAll reads every top-level form of src. The returned error is nil
// when the whole input was read, otherwise the ParseError that ended the
// pass; nodes read before it are still returned.
func ParseAll(src []byte, opts ...ParseOption) ([]*ir.Node, *ParseError) {
	r := NewReader(src, opts...)
	var res []*ir.Node
	for {
		n, err := r.Next()
		if err == io.EOF {
			return res, nil
		}
		if err != nil {
			var pe *ParseError
			if errors.As(err, &pe) {
				return res, pe
			}
			return res, &ParseError{Line: 1, Column: 1, Message: err.Error(), Err: err}
		}
		res = append(res, n)
	}
}

// ReadString reads exactly one form from s.
func ReadString(s string, opts ...ParseOption) (*ir.Node, error) {
	r := NewReader([]byte(s), opts...)
	n, err := r.Next()
	if err == io.EOF {
		return nil, ErrEmpty
	}
	if err != nil {
		return nil, err
	}
	if _, err := r.Next(); err != io.EOF {
		if err == nil {
			return nil, ErrTrailing
		}
		return nil, err
	}
	return n, nil
}
