package ir

import "fmt"

type Type int

const (
	NilType Type = iota
	BoolType
	NumberType
	StringType
	KeywordType
	SymbolType
	CharType
	RegexType
	ListType
	VectorType
	MapType
	SetType
	// PairType is one key/value entry of a map. It has no span of its own.
	PairType
	// MacroType is a reader macro such as 'x or ^meta x.
	MacroType
)

func (t Type) String() string {
	s, ok := map[Type]string{
		NilType:     "Nil",
		BoolType:    "Bool",
		NumberType:  "Number",
		StringType:  "String",
		KeywordType: "Keyword",
		SymbolType:  "Symbol",
		CharType:    "Char",
		RegexType:   "Regex",
		ListType:    "List",
		VectorType:  "Vector",
		MapType:     "Map",
		SetType:     "Set",
		PairType:    "Pair",
		MacroType:   "Macro",
	}[t]
	if ok {
		return s
	}
	return "<unknown type>"
}

func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(d []byte) error {
	for _, tt := range Types() {
		if tt.String() == string(d) {
			*t = tt
			return nil
		}
	}
	return fmt.Errorf("unrecognized type %q", d)
}

func Types() []Type {
	return []Type{
		NilType,
		BoolType,
		NumberType,
		StringType,
		KeywordType,
		SymbolType,
		CharType,
		RegexType,
		ListType,
		VectorType,
		MapType,
		SetType,
		PairType,
		MacroType,
	}
}

// IsColl reports whether nodes of type t are bracketed collections in the
// source.
func (t Type) IsColl() bool {
	switch t {
	case ListType, VectorType, MapType, SetType:
		return true
	default:
		return false
	}
}

