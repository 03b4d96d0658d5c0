package ir

import (
	"strconv"
	"strings"
)

// Span locates a node in its source. Lines and columns are 1-based and
// counted in characters; EndColumn is the column just after the last
// character.
type Span struct {
	Line      int `json:"line"`
	Column    int `json:"column"`
	EndLine   int `json:"endLine"`
	EndColumn int `json:"endColumn"`
}

func (s Span) IsZero() bool {
	return s == Span{}
}

// Contains reports whether the position (line, col) falls inside s.
func (s Span) Contains(line, col int) bool {
	if line < s.Line || line > s.EndLine {
		return false
	}
	if line == s.Line && col < s.Column {
		return false
	}
	if line == s.EndLine && col >= s.EndColumn {
		return false
	}
	return true
}

func (s Span) String() string {
	return strconv.Itoa(s.Line) + ":" + strconv.Itoa(s.Column) + "-" +
		strconv.Itoa(s.EndLine) + ":" + strconv.Itoa(s.EndColumn)
}

type Node struct {
	Type        Type
	Span        Span
	Parent      *Node
	ParentIndex int
	Values      []*Node

	// Open is the opening delimiter of a collection: "(", "[", "{", "#{"
	// or "#(".
	Open string

	// String holds the text of strings, symbols, keywords (without the
	// leading colon), characters, regexes and reader macro prefixes.
	String  string
	Bool    bool
	Number  string
	Float64 *float64
	Int64   *int64
}

func (y *Node) WithSpan(s Span) *Node {
	y.Span = s
	return y
}

// Append adds children to y, maintaining parent links.
func (y *Node) Append(vs ...*Node) *Node {
	for _, v := range vs {
		v.Parent = y
		v.ParentIndex = len(y.Values)
		y.Values = append(y.Values, v)
	}
	return y
}

// Depth is the number of collections enclosing y.
func (y *Node) Depth() int {
	d := 0
	for p := y.Parent; p != nil; p = p.Parent {
		if p.Type.IsColl() {
			d++
		}
	}
	return d
}

// Path describes the position of y below its root, for example "$[0][2]".
func (y *Node) Path() string {
	var parts []string
	for x := y; x.Parent != nil; x = x.Parent {
		parts = append(parts, "["+strconv.Itoa(x.ParentIndex)+"]")
	}
	var b strings.Builder
	b.WriteString("$")
	for i := len(parts) - 1; i >= 0; i-- {
		b.WriteString(parts[i])
	}
	return b.String()
}

// Find returns the innermost node under y whose span contains (line, col).
func (y *Node) Find(line, col int) *Node {
	var best *Node
	stack := []*Node{y}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !n.Span.IsZero() {
			if !n.Span.Contains(line, col) {
				continue
			}
			best = n
		}
		for i := len(n.Values) - 1; i >= 0; i-- {
			stack = append(stack, n.Values[i])
		}
	}
	return best
}

func Nil() *Node {
	return &Node{Type: NilType}
}

func FromBool(v bool) *Node {
	return &Node{Type: BoolType, Bool: v}
}

func FromString(v string) *Node {
	return &Node{Type: StringType, String: v}
}

func FromInt(v int64) *Node {
	return &Node{
		Type:   NumberType,
		Number: strconv.FormatInt(v, 10),
		Int64:  &v,
	}
}

func Symbol(name string) *Node {
	return &Node{Type: SymbolType, String: name}
}

func Keyword(name string) *Node {
	return &Node{Type: KeywordType, String: name}
}

func List(vs ...*Node) *Node {
	return (&Node{Type: ListType, Open: "("}).Append(vs...)
}

func Vector(vs ...*Node) *Node {
	return (&Node{Type: VectorType, Open: "["}).Append(vs...)
}

func Set(vs ...*Node) *Node {
	return (&Node{Type: SetType, Open: "#{"}).Append(vs...)
}

// Map builds a map node from alternating keys and values, grouping them
// into pairs.
func Map(kvs ...*Node) (*Node, error) {
	if len(kvs)%2 != 0 {
		return nil, ErrOddMap
	}
	res := &Node{Type: MapType, Open: "{"}
	for i := 0; i < len(kvs); i += 2 {
		res.Append((&Node{Type: PairType}).Append(kvs[i], kvs[i+1]))
	}
	return res, nil
}

// Macro builds a reader macro node such as 'x.
func Macro(prefix string, vs ...*Node) *Node {
	return (&Node{Type: MacroType, String: prefix}).Append(vs...)
}

// Entries returns the alternating keys and values of a map node.
func (y *Node) Entries() ([]*Node, error) {
	if y.Type != MapType {
		return nil, ErrNotMap
	}
	res := make([]*Node, 0, 2*len(y.Values))
	for _, p := range y.Values {
		res = append(res, p.Values...)
	}
	return res, nil
}
