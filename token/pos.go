package token

import (
	"fmt"
	"strconv"
)

// PosDoc is the document positions refer to.
type PosDoc struct {
	d []rune
}

func NewPosDoc(d []rune) *PosDoc {
	return &PosDoc{d: d}
}

func (d *PosDoc) Pos(i, line, col int) Pos {
	return Pos{I: i, Line: line, Col: col, D: d}
}

// Pos is a position in a document. I is the rune offset, Line and Col are
// 1-based.
type Pos struct {
	I    int
	Line int
	Col  int
	D    *PosDoc
}

func (p Pos) LineCol() (int, int) {
	return p.Line, p.Col
}

func (p Pos) String() string {
	sample := "?"
	if p.D != nil && len(p.D.d) > 0 {
		sample = string(p.D.d[max(0, p.I-5):min(p.I+5, len(p.D.d))])
	}
	sample = strconv.Quote(sample)
	sample = sample[1 : len(sample)-1]
	return fmt.Sprintf("`...%s...` at offset %d (line=%d, col=%d)", sample, p.I, p.Line, p.Col)
}
