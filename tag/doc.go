// Package tag flattens parsed forms into position tags.
//
// A tag marks one rendering boundary at a source line and column: the
// beginning or end of a form, an opening or closing delimiter, the
// indentation of a line, or a parse error. Tags are built afresh for every
// pass over a document and never mutated.
//
// End, DelimiterEnd and Error tags carry a Level: the column at which a
// line following the tag resumes when it is auto-indented.
package tag
