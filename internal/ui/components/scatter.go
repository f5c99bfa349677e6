package components

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/audi70r/gitstory/internal/scale"
	"github.com/audi70r/gitstory/internal/stats"
)

// Margin is the gap between the plot bounds and the usable area
type Margin struct {
	Top, Right, Bottom, Left float64
}

// PlotArea describes the plot in plot units
type PlotArea struct {
	Width, Height float64
	Margin        Margin
}

// NewPlotArea returns the standard scatter area
func NewPlotArea(width, height float64) PlotArea {
	return PlotArea{
		Width:  width,
		Height: height,
		Margin: Margin{Top: 10, Right: 10, Bottom: 30, Left: 40},
	}
}

func (a PlotArea) left() float64   { return a.Margin.Left }
func (a PlotArea) right() float64  { return a.Width - a.Margin.Right }
func (a PlotArea) top() float64    { return a.Margin.Top }
func (a PlotArea) bottom() float64 { return a.Height - a.Margin.Bottom }

// Mark is one plotted commit
type Mark struct {
	Commit   *stats.Commit
	X, Y, R  float64
	Selected bool
}

// ScatterLayout positions commits on a date x hour-of-day plane
type ScatterLayout struct {
	Area  PlotArea
	X     scale.Time
	Y     scale.Linear
	R     scale.Sqrt
	Marks []Mark // drawing order: largest first
}

// InitialLayout is the first render: x domain padded by a day before and
// twelve hours after the commit extent.
func InitialLayout(commits []*stats.Commit, area PlotArea, radius [2]float64) *ScatterLayout {
	l := &ScatterLayout{Area: area}
	if len(commits) > 0 {
		lo, hi := timeExtent(commits)
		lo, hi = scale.PadDays(lo, hi, 1, 12)
		l.X = scale.NewTime(lo, hi, area.left(), area.right())
	}
	l.Y = scale.NewLinear(0, 24, area.bottom(), area.top())
	l.place(commits, radius)
	return l
}

// Update re-renders against a new visible set: the x domain becomes the plain
// extent of the visible commits and the radius range is replaced. Pixel
// ranges are kept from the initial layout.
func (l *ScatterLayout) Update(commits []*stats.Commit, radius [2]float64) *ScatterLayout {
	next := &ScatterLayout{Area: l.Area, X: l.X, Y: l.Y}
	if len(commits) > 0 {
		lo, hi := timeExtent(commits)
		next.X = scale.NewTime(lo, hi, l.X.Range[0], l.X.Range[1])
	}
	next.place(commits, radius)
	return next
}

func (l *ScatterLayout) place(commits []*stats.Commit, radius [2]float64) {
	minLines, maxLines, _ := scale.Extent(commits, func(c *stats.Commit) float64 {
		return float64(c.TotalLines)
	})
	l.R = scale.NewSqrt(minLines, maxLines, radius[0], radius[1])

	sorted := make([]*stats.Commit, len(commits))
	copy(sorted, commits)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].TotalLines != sorted[j].TotalLines {
			return sorted[i].TotalLines > sorted[j].TotalLines
		}
		return sorted[i].ID < sorted[j].ID
	})

	l.Marks = make([]Mark, len(sorted))
	for i, c := range sorted {
		l.Marks[i] = Mark{
			Commit: c,
			X:      l.X.Map(c.Datetime),
			Y:      l.Y.Map(c.HourFrac),
			R:      l.R.Map(float64(c.TotalLines)),
		}
	}
}

func timeExtent(commits []*stats.Commit) (time.Time, time.Time) {
	lo, hi := commits[0].Datetime, commits[0].Datetime
	for _, c := range commits[1:] {
		if c.Datetime.Before(lo) {
			lo = c.Datetime
		}
		if c.Datetime.After(hi) {
			hi = c.Datetime
		}
	}
	return lo, hi
}

// Brush is a drag-selection rectangle in plot units
type Brush struct {
	X0, Y0, X1, Y1 float64
}

// NewBrush normalizes two corner points
func NewBrush(ax, ay, bx, by float64) Brush {
	return Brush{
		X0: math.Min(ax, bx), Y0: math.Min(ay, by),
		X1: math.Max(ax, bx), Y1: math.Max(ay, by),
	}
}

// Contains reports whether a point lies inside the brush, edges included
func (b Brush) Contains(x, y float64) bool {
	return x >= b.X0 && x <= b.X1 && y >= b.Y0 && y <= b.Y1
}

// Select marks every mark whose center lies in b; a nil brush clears the
// selection. It returns the number selected.
func (l *ScatterLayout) Select(b *Brush) int {
	n := 0
	for i := range l.Marks {
		m := &l.Marks[i]
		m.Selected = b != nil && b.Contains(m.X, m.Y)
		if m.Selected {
			n++
		}
	}
	return n
}

// Selected returns the selected commits in drawing order
func (l *ScatterLayout) Selected() []*stats.Commit {
	var out []*stats.Commit
	for _, m := range l.Marks {
		if m.Selected {
			out = append(out, m.Commit)
		}
	}
	return out
}

// Raster assigns each terminal cell the index of the mark drawn on top of it,
// or -1. Marks are painted in order, so smaller marks cover larger ones. Every
// mark covers at least its center cell.
func (l *ScatterLayout) Raster(cols, rows int) [][]int {
	grid := make([][]int, rows)
	for r := range grid {
		grid[r] = make([]int, cols)
		for c := range grid[r] {
			grid[r][c] = -1
		}
	}
	if cols == 0 || rows == 0 {
		return grid
	}

	sx := float64(cols) / l.Area.Width
	sy := float64(rows) / l.Area.Height

	for i, m := range l.Marks {
		cx, cy := m.X*sx, m.Y*sy
		rx, ry := math.Max(m.R*sx, 0.5), math.Max(m.R*sy, 0.5)

		for r := int(cy - ry); r <= int(cy+ry); r++ {
			for c := int(cx - rx); c <= int(cx+rx); c++ {
				if r < 0 || r >= rows || c < 0 || c >= cols {
					continue
				}
				dx := (float64(c) + 0.5 - cx) / rx
				dy := (float64(r) + 0.5 - cy) / ry
				if dx*dx+dy*dy <= 1 {
					grid[r][c] = i
				}
			}
		}

		if r, c := int(cy), int(cx); r >= 0 && r < rows && c >= 0 && c < cols {
			grid[r][c] = i
		}
	}
	return grid
}

// CellToPlot converts the center of a terminal cell to plot units
func (l *ScatterLayout) CellToPlot(col, row, cols, rows int) (float64, float64) {
	return (float64(col) + 0.5) * l.Area.Width / float64(cols),
		(float64(row) + 0.5) * l.Area.Height / float64(rows)
}

// PlotToCell converts plot units to a terminal cell
func (l *ScatterLayout) PlotToCell(x, y float64, cols, rows int) (int, int) {
	return int(x * float64(cols) / l.Area.Width), int(y * float64(rows) / l.Area.Height)
}

// HourLabel formats a y tick such as "09:00"
func HourLabel(h int) string {
	return fmt.Sprintf("%02d:00", h%24)
}
