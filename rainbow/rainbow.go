// Package rainbow assigns colours to delimiters by nesting depth.
package rainbow

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/signadot/soup/soup/tag"
)

// Pos identifies a delimiter by the position of its tag.
type Pos struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Colors maps delimiter positions to colour names.
type Colors map[Pos]string

// Palette is an ordered sequence of colour names, indexed by depth.
type Palette []string

// DefaultPalette is distinct at shallow depths.
var DefaultPalette = Palette{
	"crimson",
	"darkorange",
	"gold",
	"limegreen",
	"deepskyblue",
	"royalblue",
	"mediumorchid",
	"hotpink",
}

// Color returns the colour for depth; it is periodic in len(p).
func (p Palette) Color(depth int) string {
	if len(p) == 0 {
		return ""
	}
	i := depth % len(p)
	if i < 0 {
		i += len(p)
	}
	return p[i]
}

func Color(depth int) string {
	return DefaultPalette.Color(depth)
}

// Colorize walks tags from depth -1, entering a collection at each Begin
// and leaving it at the matching End, and assigns each Delimiter the
// colour of the depth it is found at.
func (p Palette) Colorize(tags []tag.Tag) Colors {
	res := Colors{}
	depth := -1
	for _, t := range tags {
		switch t.Kind {
		case tag.Begin:
			if t.Node != nil && t.Node.Type.IsColl() {
				depth++
			}
		case tag.End:
			if t.Node != nil && t.Node.Type.IsColl() {
				depth--
			}
		case tag.Delimiter:
			res[Pos{Line: t.Line, Column: t.Column}] = p.Color(depth)
		}
	}
	return res
}

func Colorize(tags []tag.Tag) Colors {
	return DefaultPalette.Colorize(tags)
}

// Get returns the colour of the delimiter tagged at line, column.
func (c Colors) Get(line, column int) (string, bool) {
	s, ok := c[Pos{Line: line, Column: column}]
	return s, ok
}

var named = map[string][3]uint8{
	"crimson":      {220, 20, 60},
	"darkorange":   {255, 140, 0},
	"gold":         {255, 215, 0},
	"limegreen":    {50, 205, 50},
	"deepskyblue":  {0, 191, 255},
	"royalblue":    {65, 105, 225},
	"mediumorchid": {186, 85, 211},
	"hotpink":      {255, 105, 180},
	"red":          {255, 0, 0},
	"orange":       {255, 165, 0},
	"yellow":       {255, 255, 0},
	"green":        {0, 128, 0},
	"blue":         {0, 0, 255},
	"purple":       {128, 0, 128},
	"cyan":         {0, 255, 255},
	"magenta":      {255, 0, 255},
	"teal":         {0, 128, 128},
	"white":        {255, 255, 255},
	"gray":         {128, 128, 128},
}

// RGB resolves a colour name or a "#rrggbb" value.
func RGB(name string) (r, g, b int, ok bool) {
	if rgb, found := named[strings.ToLower(name)]; found {
		return int(rgb[0]), int(rgb[1]), int(rgb[2]), true
	}
	if len(name) != 7 || name[0] != '#' {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(name[1:], 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff), true
}
