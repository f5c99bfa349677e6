package components

import (
	"github.com/lucasb-eyer/go-colorful"
)

// Theme colors as hex strings usable in tview tags and tcell
type Theme struct {
	Name       string
	Background string
	Foreground string
	Muted      string
	Accent     string
	Mark       string // commit dot, already blended over Background
	MarkHover  string
	Selected   string
	Track      string
}

const (
	steelBlue   = "#4682b4"
	markOpacity = 0.7
)

// DarkTheme is the default scheme
var DarkTheme = NewTheme("dark", "#000000", "#e0e0e0", "#808080")

// LightTheme is the alternate scheme
var LightTheme = NewTheme("light", "#ffffff", "#202020", "#707070")

// NewTheme derives the plot colors for a background
func NewTheme(name, bg, fg, muted string) Theme {
	return Theme{
		Name:       name,
		Background: bg,
		Foreground: fg,
		Muted:      muted,
		Accent:     "#00bcd4",
		Mark:       Blend(steelBlue, bg, markOpacity),
		MarkHover:  steelBlue,
		Selected:   "#ff6b6b",
		Track:      Blend(fg, bg, 0.25),
	}
}

// ThemeByName returns the named theme, falling back to dark
func ThemeByName(name string) Theme {
	if name == LightTheme.Name {
		return LightTheme
	}
	return DarkTheme
}

// Toggle returns the other theme
func (t Theme) Toggle() Theme {
	if t.Name == LightTheme.Name {
		return DarkTheme
	}
	return LightTheme
}

// Blend composites fg at opacity alpha over bg. Invalid input returns fg
// unchanged.
func Blend(fg, bg string, alpha float64) string {
	f, err := colorful.Hex(fg)
	if err != nil {
		return fg
	}
	b, err := colorful.Hex(bg)
	if err != nil {
		return fg
	}
	return b.BlendRgb(f, alpha).Clamped().Hex()
}
