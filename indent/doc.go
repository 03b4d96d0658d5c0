// Package indent derives the indentation of every line from tags.
//
// Indentation is structural: leading horizontal whitespace typed into a
// document is discarded by Strip and re-derived from the forms enclosing
// each line. Lines inside multi-line strings keep their text untouched and
// receive no indentation.
package indent
