package indent

import (
	"errors"
	"strings"

	"github.com/signadot/soup/soup/ir"
	"github.com/signadot/soup/soup/parse"
	"github.com/signadot/soup/soup/tag"
	"github.com/signadot/soup/soup/token"
)

// Split splits text into lines.
func Split(text string) []string {
	return strings.Split(text, "\n")
}

// IsSpace reports whether r is horizontal whitespace removed from line
// starts. The no-break space is what rendered indentation is made of.
func IsSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\u00a0'
}

// Leading counts the leading horizontal whitespace runes of line.
func Leading(line string) int {
	n := 0
	for _, r := range line {
		if !IsSpace(r) {
			break
		}
		n++
	}
	return n
}

// Protected returns the lines of text whose leading whitespace belongs to
// a string. An unterminated string protects every line after the last
// complete token.
func Protected(text string) map[int]bool {
	toks, err := token.Tokenize(nil, []byte(text))
	res := map[int]bool{}
	for i := range toks {
		tok := &toks[i]
		if tok.Type != token.TString && tok.Type != token.TRegex {
			continue
		}
		for l := tok.Pos.Line + 1; l <= tok.End.Line; l++ {
			res[l] = true
		}
	}
	if err != nil && errors.Is(err, token.ErrUnterminated) {
		from := 1
		if len(toks) > 0 {
			from = toks[len(toks)-1].End.Line
		}
		var te *token.TokenizeErr
		if errors.As(err, &te) {
			for l := from + 1; l <= te.Pos.Line; l++ {
				res[l] = true
			}
		}
	}
	return res
}

// Strip removes leading horizontal whitespace from every line not inside a
// string.
func Strip(text string) string {
	lines := Split(text)
	prot := Protected(text)
	for i, line := range lines {
		if prot[i+1] {
			continue
		}
		lines[i] = string([]rune(line)[Leading(line):])
	}
	return strings.Join(lines, "\n")
}

// Apply prefixes each line of stripped lines with the spaces of its Indent
// tag.
func Apply(lines []string, indents []tag.Tag) string {
	levels := Levels(indents)
	res := make([]string, len(lines))
	for i, line := range lines {
		res[i] = strings.Repeat(" ", levels[i+1]) + line
	}
	return strings.Join(res, "\n")
}

// Layout is the structural analysis of a document.
type Layout struct {
	// Lines are the stripped lines.
	Lines []string
	Nodes []*ir.Node
	Err   *parse.ParseError
	Tags  []tag.Tag
	// Indents has one Indent tag per line outside strings.
	Indents []tag.Tag
}

// Derive strips text and computes its tags and indentation.
func Derive(text string) *Layout {
	stripped := Strip(text)
	nodes, pe := parse.ParseAll([]byte(stripped))
	lines := Split(stripped)
	tags := tag.Build(nodes, pe)
	prot := Protected(stripped)
	var indents []tag.Tag
	for _, t := range Calculate(tags, len(lines)) {
		if !prot[t.Line] {
			indents = append(indents, t)
		}
	}
	return &Layout{
		Lines:   lines,
		Nodes:   nodes,
		Err:     pe,
		Tags:    tags,
		Indents: indents,
	}
}

// Text returns the canonically indented text.
func (l *Layout) Text() string {
	return Apply(l.Lines, l.Indents)
}

// Reindent returns text with canonical structural indentation.
func Reindent(text string) string {
	return Derive(text).Text()
}
