package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/audi70r/gitstory/internal/stats"
)

// PlaceTooltip positions a w x h box near the pointer (px, py) inside a
// viewW x viewH container. The box sits pad cells right of and below the
// pointer, flipping left when it would overflow the right edge and up when it
// would overflow the bottom.
func PlaceTooltip(px, py, w, h, viewW, viewH, pad int) (int, int) {
	x := px + pad
	if x+w > viewW {
		x = px - pad - w
	}
	y := py + pad
	if y+h > viewH {
		y = py - pad - h
	}
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	return x, y
}

// TooltipLines renders the commit tooltip body
func TooltipLines(c *stats.Commit, tz *time.Location, layout string) []string {
	at := c.Datetime.In(tz)
	return []string{
		fmt.Sprintf("[gray]Commit[-]  [yellow]%s[-]", c.ID),
		fmt.Sprintf("[gray]Date[-]    %s", at.Format("Monday, January 2, 2006")),
		fmt.Sprintf("[gray]Time[-]    %s", at.Format(layout)),
		fmt.Sprintf("[gray]Author[-]  %s", c.Author),
		fmt.Sprintf("[gray]Lines[-]   %s", humanize.Comma(int64(c.TotalLines))),
	}
}

// TooltipWidth returns the widest line of a tagged block
func TooltipWidth(lines []string) int {
	w := 0
	for _, l := range lines {
		if n := TaggedWidth(l); n > w {
			w = n
		}
	}
	return w
}

// PadRight pads a tagged string to width visible cells
func PadRight(s string, width int) string {
	if n := TaggedWidth(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}
