package tag

import (
	"fmt"

	"github.com/signadot/soup/soup/ir"
)

// Tag is a boundary at a source position. For End and DelimiterEnd tags,
// Line and Column are the end line and the end column.
type Tag struct {
	Kind    Kind     `json:"kind"`
	Line    int      `json:"line"`
	Column  int      `json:"column"`
	Level   int      `json:"level"`
	Node    *ir.Node `json:"-"`
	Message string   `json:"message,omitempty"`
}

func (t Tag) String() string {
	s := fmt.Sprintf("%s@%d:%d", t.Kind, t.Line, t.Column)
	if t.Kind.HasLevel() || t.Kind == Indent {
		s += fmt.Sprintf(" level=%d", t.Level)
	}
	if t.Message != "" {
		s += fmt.Sprintf(" %q", t.Message)
	}
	return s
}

// ByLine groups tags by the line they are anchored on, keeping their
// relative order.
func ByLine(tags []Tag) map[int][]Tag {
	res := map[int][]Tag{}
	for _, t := range tags {
		res[t.Line] = append(res[t.Line], t)
	}
	return res
}
