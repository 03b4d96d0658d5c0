package indent

import "sort"

// OffsetMap translates character offsets in a text to offsets in the same
// text after its line indentation changed. Both texts must have the same
// number of lines.
type OffsetMap struct {
	oldStart []int
	newStart []int
	oldWS    []int
	newWS    []int
	same     []bool
}

func NewOffsetMap(oldLines, newLines []string) *OffsetMap {
	m := &OffsetMap{}
	oldOff, newOff := 0, 0
	for i, ol := range oldLines {
		nl := ""
		if i < len(newLines) {
			nl = newLines[i]
		}
		m.oldStart = append(m.oldStart, oldOff)
		m.newStart = append(m.newStart, newOff)
		m.oldWS = append(m.oldWS, Leading(ol))
		m.newWS = append(m.newWS, Leading(nl))
		m.same = append(m.same, ol == nl)
		oldOff += len([]rune(ol)) + 1
		newOff += len([]rune(nl)) + 1
	}
	return m
}

// Line returns the 0-based line and column of offset in the old text.
func (m *OffsetMap) Line(offset int) (int, int) {
	i := sort.Search(len(m.oldStart), func(i int) bool {
		return m.oldStart[i] > offset
	}) - 1
	if i < 0 {
		return 0, 0
	}
	return i, offset - m.oldStart[i]
}

// Map translates offset. An offset inside the old leading whitespace of a
// changed line lands at the end of the new indentation.
func (m *OffsetMap) Map(offset int) int {
	if len(m.oldStart) == 0 {
		return offset
	}
	i, col := m.Line(offset)
	if m.same[i] {
		return m.newStart[i] + col
	}
	if col <= m.oldWS[i] {
		return m.newStart[i] + m.newWS[i]
	}
	return m.newStart[i] + col - m.oldWS[i] + m.newWS[i]
}

// IndentEnd returns the offset in the new text of the end of the
// indentation of 0-based line i.
func (m *OffsetMap) IndentEnd(i int) int {
	if i < 0 || i >= len(m.newStart) {
		return 0
	}
	return m.newStart[i] + m.newWS[i]
}

// LineStart returns the offset in the old text where 0-based line i
// begins.
func (m *OffsetMap) LineStart(i int) int {
	if i < 0 || i >= len(m.oldStart) {
		return 0
	}
	return m.oldStart[i]
}

// OldIndent returns the leading whitespace count of 0-based line i in the
// old text.
func (m *OffsetMap) OldIndent(i int) int {
	if i < 0 || i >= len(m.oldWS) {
		return 0
	}
	return m.oldWS[i]
}
