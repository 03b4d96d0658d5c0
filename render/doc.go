// Package render merges tags with the literal text of a document.
//
// HTML produces markup for an editable surface, with one span per form,
// delimiter and indentation run, and an empty error span where a read
// failed. ANSI produces the same walk as terminal text coloured with
// SGR sequences.
package render
