// Package token provides tokenization for Lisp-family source text.
//
// [Tokenizer] scans runes and yields one [Token] per call to
// [Tokenizer.Next], tracking 1-based line and column positions so that
// every token knows where it starts and ends. [Tokenize] is a convenience
// for tokenizing a whole document.
package token
