package components

import (
	"strings"

	"github.com/audi70r/gitstory/internal/git"
	"github.com/audi70r/gitstory/internal/scale"
)

// UnitGlyph is drawn once per line of code
const UnitGlyph = "•"

// RenderUnits draws one colored glyph per line, wrapped into rows of width
// glyphs. Colors come from the shared type scale so a type keeps its color
// across renders.
func RenderUnits(lines []git.EditEvent, colors *scale.Ordinal, width int) []string {
	if width <= 0 || len(lines) == 0 {
		return nil
	}
	var (
		rows []string
		sb   strings.Builder
		prev string
		n    int
	)
	for _, l := range lines {
		c := colors.Map(l.Type)
		if c != prev {
			if prev != "" {
				sb.WriteString("[-]")
			}
			sb.WriteString("[" + c + "]")
			prev = c
		}
		sb.WriteString(UnitGlyph)
		n++
		if n == width {
			sb.WriteString("[-]")
			rows = append(rows, sb.String())
			sb.Reset()
			prev, n = "", 0
		}
	}
	if n > 0 {
		sb.WriteString("[-]")
		rows = append(rows, sb.String())
	}
	return rows
}

// RenderLegend shows each type in the scale's domain with its color
func RenderLegend(colors *scale.Ordinal) string {
	var parts []string
	for _, t := range colors.Domain() {
		name := t
		if name == "" {
			name = "other"
		}
		parts = append(parts, "["+colors.Map(t)+"]"+UnitGlyph+"[-] "+name)
	}
	return strings.Join(parts, "  ")
}
