package components

import (
	"strings"
	"time"
)

// Sparkline characters: U+2581 to U+2588
var sparkBars = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// RenderSparkline converts counts to unicode bars. Zero stays at the lowest
// bar so empty stretches of history read as flat.
func RenderSparkline(values []int) string {
	if len(values) == 0 {
		return ""
	}

	peak := 0
	for _, v := range values {
		if v > peak {
			peak = v
		}
	}

	var sb strings.Builder
	for _, v := range values {
		sb.WriteRune(sparkBar(v, peak))
	}
	return sb.String()
}

func sparkBar(v, peak int) rune {
	if peak <= 0 || v <= 0 {
		return sparkBars[0]
	}
	idx := v * (len(sparkBars) - 1) / peak
	if idx >= len(sparkBars) {
		idx = len(sparkBars) - 1
	}
	return sparkBars[idx]
}

// Density buckets instants into n equal slices of [lo, hi]
func Density(times []time.Time, lo, hi time.Time, n int) []int {
	if n <= 0 {
		return nil
	}
	counts := make([]int, n)
	span := hi.Sub(lo)
	for _, t := range times {
		i := 0
		if span > 0 {
			i = int(float64(t.Sub(lo)) / float64(span) * float64(n))
		}
		if i >= n {
			i = n - 1
		}
		if i < 0 {
			i = 0
		}
		counts[i]++
	}
	return counts
}

// RenderTrack draws the slider track: a sparkline of commit density where
// the first filled cells use fill and the rest use track
func RenderTrack(counts []int, filled int, fill, track string) string {
	peak := 0
	for _, v := range counts {
		if v > peak {
			peak = v
		}
	}
	if filled > len(counts) {
		filled = len(counts)
	}
	if filled < 0 {
		filled = 0
	}

	var sb strings.Builder
	sb.WriteString("[" + fill + "]")
	for _, v := range counts[:filled] {
		sb.WriteRune(sparkBar(v, peak))
	}
	sb.WriteString("[" + track + "]")
	for _, v := range counts[filled:] {
		sb.WriteRune(sparkBar(v, peak))
	}
	sb.WriteString("[-]")
	return sb.String()
}
