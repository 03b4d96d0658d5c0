// Package repl evaluates the top-level forms of a document in order and
// positions their results next to the source.
package repl
