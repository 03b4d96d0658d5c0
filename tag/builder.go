package tag

import (
	"github.com/signadot/soup/soup/debug"
	"github.com/signadot/soup/soup/ir"
	"github.com/signadot/soup/soup/parse"
)

// State is the layout context a form is tagged in. The zero State is the
// top level.
type State struct {
	// Level is the indentation of the enclosing collection's body.
	Level int
	// Adjust is added to Level for forms starting on a later line than
	// their parent.
	Adjust int
	// Column is the column just before the enclosing opening delimiter.
	Column int
	// Line is the line of the enclosing opening delimiter.
	Line int
}

// Child returns the state for the children of collection n tagged in s.
func (s State) Child(n *ir.Node) State {
	size := DelimiterSize(n)
	adjust := size
	if n.Type == ir.ListType {
		adjust = 2
	}
	level := s.Level
	if n.Span.Line != s.Line {
		level += s.Adjust
	}
	return State{
		Level:  level,
		Adjust: adjust,
		Column: max(n.Span.Column-1, s.Column, 0),
		Line:   n.Span.Line,
	}
}

// Resume is the level at which a line following a finished form resumes.
func (s State) Resume() int {
	return s.Level + s.Adjust + s.Column
}

// DelimiterSize is the width of the opening delimiter of n.
func DelimiterSize(n *ir.Node) int {
	if n.Type == ir.SetType || len(n.Open) == 2 {
		return 2
	}
	return 1
}

type frame struct {
	node *ir.Node
	st   State
	// close marks the frame which emits the closing tags of a collection
	// once its children are done.
	close bool
	inner State
}

// Builder accumulates tags for a sequence of top-level forms.
type Builder struct {
	tags []Tag
}

func NewBuilder() *Builder {
	return &Builder{}
}

// Add appends the tags of n tagged in state st.
func (b *Builder) Add(form *ir.Node, st State) {
	stack := []frame{{node: form, st: st}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := f.node
		if f.close {
			span := n.Span
			level := f.inner.Resume()
			b.tags = append(b.tags,
				Tag{Kind: Delimiter, Line: span.EndLine, Column: span.EndColumn - 1, Node: n},
				Tag{Kind: DelimiterEnd, Line: span.EndLine, Column: span.EndColumn, Level: level, Node: n},
				Tag{Kind: End, Line: span.EndLine, Column: span.EndColumn, Level: f.st.Resume(), Node: n},
			)
			continue
		}
		switch n.Type {
		case ir.PairType, ir.MacroType:
			for i := len(n.Values) - 1; i >= 0; i-- {
				stack = append(stack, frame{node: n.Values[i], st: f.st})
			}
			continue
		}
		span := n.Span
		b.tags = append(b.tags, Tag{Kind: Begin, Line: span.Line, Column: span.Column, Node: n})
		if !n.Type.IsColl() {
			b.tags = append(b.tags, Tag{
				Kind:   End,
				Line:   span.EndLine,
				Column: span.EndColumn,
				Level:  f.st.Resume(),
				Node:   n,
			})
			continue
		}
		inner := f.st.Child(n)
		b.tags = append(b.tags,
			Tag{Kind: Delimiter, Line: span.Line, Column: span.Column, Node: n},
			Tag{Kind: DelimiterEnd, Line: span.Line, Column: span.Column + DelimiterSize(n), Level: inner.Resume(), Node: n},
		)
		stack = append(stack, frame{node: n, st: f.st, close: true, inner: inner})
		for i := len(n.Values) - 1; i >= 0; i-- {
			stack = append(stack, frame{node: n.Values[i], st: inner})
		}
	}
}

// AddError appends the Error tag for a failed read.
func (b *Builder) AddError(pe *parse.ParseError, st State) {
	b.tags = append(b.tags, Tag{
		Kind:    Error,
		Line:    pe.Line,
		Column:  pe.Column,
		Level:   st.Level,
		Message: pe.Message,
	})
}

func (b *Builder) Tags() []Tag {
	return b.tags
}

// Build tags top-level forms followed by the error that ended the read, if
// any.
func Build(nodes []*ir.Node, pe *parse.ParseError) []Tag {
	b := NewBuilder()
	for _, n := range nodes {
		b.Add(n, State{})
	}
	if pe != nil {
		b.AddError(pe, State{})
	}
	if debug.Tags() {
		debug.LogAny(b.tags)
	}
	return b.tags
}
