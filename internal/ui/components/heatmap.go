package components

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/audi70r/gitstory/internal/stats"
)

// Heat intensity colors for tview
var heatColors = []string{"gray", "blue", "green", "yellow", "red"}

func heatColor(v, peak int) string {
	if peak <= 0 || v <= 0 {
		return heatColors[0]
	}
	i := v * (len(heatColors) - 1) / peak
	if i < 1 {
		i = 1
	}
	return heatColors[i]
}

// RenderHourStrip draws lines written per hour of day as a one-row heatmap
// with a tick row underneath
func RenderHourStrip(counts [24]int) string {
	peak := 0
	for _, v := range counts {
		if v > peak {
			peak = v
		}
	}

	var sb strings.Builder
	for _, v := range counts {
		sb.WriteString(fmt.Sprintf("[%s]█[-]", heatColor(v, peak)))
	}
	sb.WriteString("\n")
	for h := 0; h < 24; h += 6 {
		sb.WriteString(fmt.Sprintf("[gray]%-6s[-]", fmt.Sprintf("%02d", h)))
	}
	return sb.String()
}

// Weekdays labels the rows of a week grid
var Weekdays = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// RenderWeekGrid draws a weekday by hour heatmap, two cells per hour
func RenderWeekGrid(m [7][24]int) string {
	peak := 0
	for _, row := range m {
		for _, v := range row {
			peak = max(peak, v)
		}
	}

	var sb strings.Builder
	sb.WriteString("     ")
	for h := 0; h < 24; h += 3 {
		sb.WriteString(fmt.Sprintf("[gray]%-6s[-]", fmt.Sprintf("%02d", h)))
	}
	for d, row := range m {
		sb.WriteString(fmt.Sprintf("\n%s  ", Weekdays[d]))
		for _, v := range row {
			sb.WriteString(fmt.Sprintf("[%s]██[-]", heatColor(v, peak)))
		}
	}
	return sb.String()
}

// RenderPeriodBars draws one bar per period of day scaled to width cells,
// highlighting top
func RenderPeriodBars(counts []stats.PeriodCount, top stats.Period, width int) string {
	peak := 0
	for _, pc := range counts {
		if pc.Lines > peak {
			peak = pc.Lines
		}
	}

	var sb strings.Builder
	for i, pc := range counts {
		n := 0
		if peak > 0 {
			n = pc.Lines * width / peak
		}
		color := "blue"
		if pc.Period == top && pc.Lines > 0 {
			color = "yellow"
		}
		sb.WriteString(fmt.Sprintf("%-10s [%s]%s[-] %s",
			pc.Period, color, strings.Repeat("█", n), humanize.Comma(int64(pc.Lines))))
		if i < len(counts)-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
