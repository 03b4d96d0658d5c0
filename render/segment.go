package render

import (
	"sort"

	"github.com/signadot/soup/soup/tag"
)

// segment is either a run of literal text or a tag.
type segment struct {
	text  string
	tag   tag.Tag
	isTag bool
}

// lineSegments interleaves the literal runs of line with its tags, ordered
// by anchor column. Indent tags come first; tags anchored past the end of
// the line come last.
func lineSegments(line string, tags []tag.Tag) []segment {
	ts := make([]tag.Tag, len(tags))
	copy(ts, tags)
	key := func(t tag.Tag) int {
		if t.Kind == tag.Indent {
			return 0
		}
		return t.Column
	}
	sort.SliceStable(ts, func(i, j int) bool {
		return key(ts[i]) < key(ts[j])
	})
	rs := []rune(line)
	var res []segment
	pos := 1
	for _, t := range ts {
		c := min(max(key(t), 1), len(rs)+1)
		if c > pos {
			res = append(res, segment{text: string(rs[pos-1 : c-1])})
			pos = c
		}
		res = append(res, segment{tag: t, isTag: true})
	}
	if pos <= len(rs) {
		res = append(res, segment{text: string(rs[pos-1:])})
	}
	return res
}

// walk calls f with the segments of each line, and with nil between lines.
func walk(lines []string, tags []tag.Tag, f func(*segment)) {
	byLine := tag.ByLine(tags)
	for i, line := range lines {
		if i > 0 {
			f(nil)
		}
		for _, seg := range lineSegments(line, byLine[i+1]) {
			f(&seg)
		}
	}
}
