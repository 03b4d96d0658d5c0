package tag

import "fmt"

type Kind int

const (
	Begin Kind = iota
	End
	Delimiter
	DelimiterEnd
	Indent
	Error
)

func (k Kind) String() string {
	switch k {
	case Begin:
		return "Begin"
	case End:
		return "End"
	case Delimiter:
		return "Delimiter"
	case DelimiterEnd:
		return "DelimiterEnd"
	case Indent:
		return "Indent"
	case Error:
		return "Error"
	}
	return "<unknown kind>"
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(d []byte) error {
	for _, kk := range []Kind{Begin, End, Delimiter, DelimiterEnd, Indent, Error} {
		if kk.String() == string(d) {
			*k = kk
			return nil
		}
	}
	return fmt.Errorf("unrecognized tag kind %q", d)
}

// HasLevel reports whether tags of kind k establish an indentation level.
func (k Kind) HasLevel() bool {
	switch k {
	case End, DelimiterEnd, Error:
		return true
	}
	return false
}

// Closes reports whether k closes a span opened by another tag.
func (k Kind) Closes() bool {
	return k == End || k == DelimiterEnd
}
