package token

import (
	"fmt"
	"strconv"
	"strings"
)

// Unquote decodes a double quoted string literal, including the quotes.
func Unquote(s string) (string, error) {
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return "", fmt.Errorf("%w: not a quoted string", ErrToken)
	}
	rs := []rune(s[1 : len(s)-1])
	var b strings.Builder
	for i := 0; i < len(rs); i++ {
		r := rs[i]
		if r != '\\' {
			b.WriteRune(r)
			continue
		}
		i++
		if i >= len(rs) {
			return "", ErrUnterminated
		}
		switch e := rs[i]; e {
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'n':
			b.WriteByte('\n')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case '\\', '"':
			b.WriteRune(e)
		case 'u':
			if i+4 >= len(rs) {
				return "", fmt.Errorf("%w: \\u%s", ErrBadUnicode, string(rs[i+1:]))
			}
			v, err := strconv.ParseUint(string(rs[i+1:i+5]), 16, 32)
			if err != nil {
				return "", fmt.Errorf("%w: \\u%s", ErrBadUnicode, string(rs[i+1:i+5]))
			}
			b.WriteRune(rune(v))
			i += 4
		default:
			if e >= '0' && e <= '7' {
				j := i
				for j < len(rs) && j < i+3 && rs[j] >= '0' && rs[j] <= '7' {
					j++
				}
				v, _ := strconv.ParseUint(string(rs[i:j]), 8, 32)
				if v > 0377 {
					return "", fmt.Errorf("%w: \\%s", ErrBadEscape, string(rs[i:j]))
				}
				b.WriteRune(rune(v))
				i = j - 1
				continue
			}
			return "", fmt.Errorf("%w: \\%c", ErrBadEscape, e)
		}
	}
	return b.String(), nil
}

// Quote renders s as a double quoted string literal.
func Quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
