package tag

import "errors"

var ErrUnbalanced = errors.New("unbalanced tags")
