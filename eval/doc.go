// Package eval interprets forms read by package parse.
//
// Values are plain Go values: nil, bool, int64, float64, string, Char,
// Keyword, Sym, List, Vector, *Map, *Set, *Fn and builtin Symbols.
// Evaluation happens against an Env holding namespaces of definitions;
// builtins registered with Register are visible from every namespace.
//
// Special forms are def, ns, in-ns, quote, if, do, let, fn, defn, when,
// and, or and script. script evaluates an expr-lang expression with the
// definitions of the current namespace and the local bindings in scope.
package eval
