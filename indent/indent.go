package indent

import (
	"github.com/signadot/soup/soup/ir"
	"github.com/signadot/soup/soup/tag"
)

// Calculate returns one Indent tag per line in 1..lineCount, skipping
// lines inside multi-line strings. The level of a line is the level of the
// last level-bearing tag anchored on a line above it.
func Calculate(tags []tag.Tag, lineCount int) []tag.Tag {
	byLine := tag.ByLine(tags)
	inString := StringLines(tags)
	res := make([]tag.Tag, 0, lineCount)
	carried := 0
	for i := 1; i <= lineCount; i++ {
		if !inString[i] {
			res = append(res, tag.Tag{Kind: tag.Indent, Line: i, Column: 1, Level: carried})
		}
		for _, t := range byLine[i] {
			if t.Kind.HasLevel() {
				carried = t.Level
			}
		}
	}
	return res
}

// StringLines returns the lines wholly inside string forms: every line of
// a string after the one it starts on.
func StringLines(tags []tag.Tag) map[int]bool {
	res := map[int]bool{}
	for _, t := range tags {
		if t.Kind != tag.Begin || t.Node == nil {
			continue
		}
		switch t.Node.Type {
		case ir.StringType, ir.RegexType:
		default:
			continue
		}
		for l := t.Node.Span.Line + 1; l <= t.Node.Span.EndLine; l++ {
			res[l] = true
		}
	}
	return res
}

// Levels maps line numbers to the levels of Indent tags.
func Levels(tags []tag.Tag) map[int]int {
	res := map[int]int{}
	for _, t := range tags {
		if t.Kind == tag.Indent {
			res[t.Line] = t.Level
		}
	}
	return res
}
