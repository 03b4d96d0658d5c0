package repl

import (
	"strings"

	"github.com/signadot/soup/soup/ir"
)

// Geometry measures source elements and results.
type Geometry interface {
	// Bottom is the bottom edge of the source element at span.
	Bottom(span ir.Span) int
	// ContainerTop is the top edge of the overlay container.
	ContainerTop() int
	// Height is the height of the overlay entry showing r.
	Height(r Result) int
}

// LineGeometry measures in fixed height lines.
type LineGeometry struct {
	LineHeight int
	Top        int
}

func (g LineGeometry) Bottom(span ir.Span) int {
	return span.EndLine * g.LineHeight
}

func (g LineGeometry) ContainerTop() int {
	return g.Top
}

func (g LineGeometry) Height(r Result) int {
	return (strings.Count(r.Text(), "\n") + 1) * g.LineHeight
}

// Placement positions one overlay entry relative to where the entries
// before it end.
type Placement struct {
	Top    int
	Height int
}

// Layout places results so that each is aligned with the bottom of its
// source element while the entries stack without overlapping.
func Layout(results []Result, g Geometry) []Placement {
	res := make([]Placement, len(results))
	above := 0
	for i, r := range results {
		h := g.Height(r)
		res[i] = Placement{
			Top:    g.Bottom(r.Span) - g.ContainerTop() - above,
			Height: h,
		}
		above += h
	}
	return res
}
