package token

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

func isNumberStart(s string) bool {
	if s == "" {
		return false
	}
	c := s[0]
	if c == '+' || c == '-' {
		if len(s) == 1 {
			return false
		}
		c = s[1]
	}
	return c >= '0' && c <= '9'
}

// ParseNumber decodes an integer, ratio or decimal literal. Exactly one of
// the returned pointers is non-nil when err is nil. Ratios decode as
// decimals.
func ParseNumber(s string) (*int64, *float64, error) {
	bad := fmt.Errorf("%w: %s", ErrNumber, s)
	body := s
	neg := false
	switch {
	case strings.HasPrefix(body, "-"):
		neg = true
		body = body[1:]
	case strings.HasPrefix(body, "+"):
		body = body[1:]
	}
	if body == "" {
		return nil, nil, bad
	}
	if num, den, ok := strings.Cut(body, "/"); ok {
		n, err1 := strconv.ParseInt(num, 10, 64)
		d, err2 := strconv.ParseInt(den, 10, 64)
		if err1 != nil || err2 != nil || d == 0 {
			return nil, nil, bad
		}
		f := float64(n) / float64(d)
		if neg {
			f = -f
		}
		return nil, &f, nil
	}
	base := 10
	digits := strings.TrimSuffix(body, "N")
	switch {
	case strings.HasPrefix(digits, "0x"), strings.HasPrefix(digits, "0X"):
		base = 16
		digits = digits[2:]
	case radixAt(digits) > 0:
		k := radixAt(digits)
		rb, err := strconv.Atoi(digits[:k])
		if err != nil || rb < 2 || rb > 36 {
			return nil, nil, bad
		}
		base = rb
		digits = digits[k+1:]
	}
	if digits != "" && !strings.Contains(digits, "_") {
		if i, err := strconv.ParseInt(digits, base, 64); err == nil {
			if neg {
				i = -i
			}
			return &i, nil, nil
		}
	}
	if base != 10 {
		return nil, nil, bad
	}
	dec := strings.TrimSuffix(body, "M")
	if dec == "" || strings.ContainsAny(dec, "_xXpP") {
		return nil, nil, bad
	}
	f, err := strconv.ParseFloat(dec, 64)
	if err != nil {
		return nil, nil, bad
	}
	if neg {
		f = -f
	}
	return nil, &f, nil
}

var charNames = map[string]rune{
	"newline":   '\n',
	"space":     ' ',
	"tab":       '\t',
	"backspace": '\b',
	"formfeed":  '\f',
	"return":    '\r',
}

// CharValue decodes a character literal such as \a, \newline or λ.
func CharValue(text string) (rune, error) {
	name := strings.TrimPrefix(text, "\\")
	if utf8.RuneCountInString(name) == 1 {
		r, _ := utf8.DecodeRuneInString(name)
		return r, nil
	}
	if r, ok := charNames[name]; ok {
		return r, nil
	}
	if len(name) == 5 && name[0] == 'u' {
		v, err := strconv.ParseUint(name[1:], 16, 32)
		if err == nil {
			return rune(v), nil
		}
	}
	if len(name) >= 2 && len(name) <= 4 && name[0] == 'o' {
		v, err := strconv.ParseUint(name[1:], 8, 32)
		if err == nil && v <= 0377 {
			return rune(v), nil
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrBadChar, text)
}

// CharName renders r as a character literal.
func CharName(r rune) string {
	for name, v := range charNames {
		if v == r {
			return "\\" + name
		}
	}
	return "\\" + string(r)
}

func validSymbol(s string) bool {
	if s == "/" {
		return true
	}
	if strings.HasSuffix(s, ":") || strings.HasSuffix(s, "/") || strings.Contains(s, "::") {
		return false
	}
	return true
}

func validKeyword(s string) bool {
	name := strings.TrimPrefix(strings.TrimPrefix(s, ":"), ":")
	if name == "" || strings.HasPrefix(name, ":") {
		return false
	}
	return validSymbol(name)
}

// radixAt returns the index of the r in a radix literal such as 2r1010, or
// -1.
func radixAt(s string) int {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
		case (c == 'r' || c == 'R') && i > 0:
			return i
		default:
			return -1
		}
	}
	return -1
}
