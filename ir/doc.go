// Package ir provides the node representation for Lisp source forms.
//
// # Overview
//
// Every form read from source is an [Node]. Scalars and collections are
// represented uniformly, and every node produced by the reader carries a
// [Span], so consumers never special-case a value without a position.
//
// The Type field selects which value fields are meaningful:
//
//   - NilType, BoolType (Bool), NumberType (Number, Int64 or Float64)
//   - StringType, KeywordType, SymbolType, CharType, RegexType (String)
//   - ListType, VectorType, MapType, SetType (Values, Open)
//
// Two structural kinds are not bracketed:
//
//   - PairType groups one key and one value inside a MapType node. It has
//     no span of its own.
//   - MacroType wraps the form(s) following a reader macro prefix such as
//     ' or ^. Its String is the prefix and its span runs from the prefix to
//     the end of the last wrapped form.
//
// # Creating Nodes
//
//	n := ir.List(ir.Symbol("+"), ir.FromInt(1), ir.FromInt(2))
//	m, err := ir.Map(ir.Keyword("a"), ir.FromInt(1))
package ir
