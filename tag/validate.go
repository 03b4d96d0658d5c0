package tag

import "fmt"

// Validate checks that every Begin has a matching End and every Delimiter
// a matching DelimiterEnd, properly nested.
func Validate(tags []Tag) error {
	var open []Tag
	for _, t := range tags {
		switch {
		case t.Kind == Begin || t.Kind == Delimiter:
			open = append(open, t)
		case t.Kind.Closes():
			want := Begin
			if t.Kind == DelimiterEnd {
				want = Delimiter
			}
			if len(open) == 0 {
				return fmt.Errorf("%w: %s without opening tag", ErrUnbalanced, t)
			}
			top := open[len(open)-1]
			if top.Kind != want || top.Node != t.Node {
				return fmt.Errorf("%w: %s closes %s", ErrUnbalanced, t, top)
			}
			open = open[:len(open)-1]
		}
	}
	if len(open) != 0 {
		return fmt.Errorf("%w: %s not closed", ErrUnbalanced, open[len(open)-1])
	}
	return nil
}

// Depths returns the nesting depth of each Begin tag and of its End tag,
// indexed like tags; other kinds get -1.
func Depths(tags []Tag) []int {
	res := make([]int, len(tags))
	d := 0
	for i, t := range tags {
		switch t.Kind {
		case Begin:
			res[i] = d
			d++
		case End:
			d--
			res[i] = d
		default:
			res[i] = -1
		}
	}
	return res
}
