package ir

import "errors"

var (
	ErrOddMap = errors.New("map literal must contain an even number of forms")
	ErrNotMap = errors.New("not a map")
)
