package views

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/audi70r/gitstory/internal/config"
	"github.com/audi70r/gitstory/internal/cursor"
	"github.com/audi70r/gitstory/internal/stats"
	"github.com/audi70r/gitstory/internal/ui/components"
)

const (
	yGutter = 6 // "23:00 "
	xGutter = 1
)

// ScatterView plots visible commits by date and hour of day
type ScatterView struct {
	*tview.Box

	cfg     *config.Config
	theme   components.Theme
	initial *components.ScatterLayout
	layout  *components.ScatterLayout

	// last raster, in plot cells
	grid         [][]int
	cols, rows   int
	plotX, plotY int

	hover          int
	mouseX, mouseY int
	dragging       bool
	dragX, dragY   int
	brush          *components.Brush
	onSelect       func(selected []*stats.Commit)
}

// NewScatterView creates a new scatter view
func NewScatterView(cfg *config.Config, onSelect func([]*stats.Commit)) *ScatterView {
	v := &ScatterView{
		Box:      tview.NewBox(),
		cfg:      cfg,
		theme:    components.ThemeByName(cfg.Theme),
		hover:    -1,
		onSelect: onSelect,
	}
	v.SetBorder(true).SetTitle(" Commits ")
	v.SetBackgroundColor(tcell.GetColor(v.theme.Background))
	return v
}

// SetData performs the initial render over every commit
func (v *ScatterView) SetData(commits []*stats.Commit) {
	area := components.NewPlotArea(v.cfg.Scatter.Width, v.cfg.Scatter.Height)
	v.initial = components.InitialLayout(commits, area, v.cfg.Scatter.InitialRadius)
	v.layout = v.initial
	v.hover = -1
}

// Refresh re-renders against the cursor's visible set
func (v *ScatterView) Refresh(c *cursor.Cursor) {
	if v.initial == nil {
		return
	}
	v.layout = v.initial.Update(c.Visible(), v.cfg.Scatter.UpdateRadius)
	v.hover = -1
	v.layout.Select(v.brush)
}

// SetTheme switches colors
func (v *ScatterView) SetTheme(t components.Theme) {
	v.theme = t
	v.SetBackgroundColor(tcell.GetColor(t.Background))
}

// ClearBrush drops the selection; it reports whether there was one
func (v *ScatterView) ClearBrush() bool {
	if v.brush == nil && !v.dragging {
		return false
	}
	v.brush = nil
	v.dragging = false
	if v.layout != nil {
		v.layout.Select(nil)
	}
	v.notifySelect()
	return true
}

// Selected returns the brushed commits
func (v *ScatterView) Selected() []*stats.Commit {
	if v.layout == nil {
		return nil
	}
	return v.layout.Selected()
}

func (v *ScatterView) notifySelect() {
	if v.onSelect != nil {
		v.onSelect(v.Selected())
	}
}

// Draw draws the plot, brush and tooltip
func (v *ScatterView) Draw(screen tcell.Screen) {
	v.Box.DrawForSubclass(screen, v)
	x, y, width, height := v.GetInnerRect()

	v.plotX, v.plotY = x+yGutter, y
	v.cols, v.rows = width-yGutter, height-xGutter
	if v.cols <= 0 || v.rows <= 0 {
		v.grid = nil
		return
	}

	if v.layout == nil || len(v.layout.Marks) == 0 {
		v.grid = nil
		tview.Print(screen, "[gray]No commits visible[-]", x, y+height/2, width, tview.AlignCenter, tcell.ColorDefault)
		return
	}

	v.drawAxes(screen, x, y+height-1)
	v.grid = v.layout.Raster(v.cols, v.rows)
	v.drawBrush(screen)
	v.drawMarks(screen)
	v.drawTooltip(screen)
}

func (v *ScatterView) drawAxes(screen tcell.Screen, left, bottom int) {
	muted := tcell.GetColor(v.theme.Muted)
	for h := 0; h <= 24; h += 6 {
		_, row := v.layout.PlotToCell(0, v.layout.Y.Map(float64(h)), v.cols, v.rows)
		if row >= v.rows {
			row = v.rows - 1
		}
		tview.Print(screen, components.HourLabel(h), left, v.plotY+row, yGutter-1, tview.AlignLeft, muted)
	}

	for _, t := range v.layout.X.Ticks(4) {
		col, _ := v.layout.PlotToCell(v.layout.X.Map(t), 0, v.cols, v.rows)
		label := t.In(v.cfg.Timezone).Format("Jan 02")
		start := v.plotX + col - len(label)/2
		if start < v.plotX {
			start = v.plotX
		}
		if start+len(label) > v.plotX+v.cols {
			start = v.plotX + v.cols - len(label)
		}
		tview.Print(screen, label, start, bottom, len(label), tview.AlignLeft, muted)
	}
}

func (v *ScatterView) drawMarks(screen tcell.Screen) {
	bg := tcell.GetColor(v.theme.Background)
	base := tcell.StyleDefault.Background(bg).Foreground(tcell.GetColor(v.theme.Mark))
	hover := base.Foreground(tcell.GetColor(v.theme.MarkHover))
	selected := base.Foreground(tcell.GetColor(v.theme.Selected))

	sx := float64(v.cols) / v.layout.Area.Width
	for r, row := range v.grid {
		for c, i := range row {
			if i < 0 {
				continue
			}
			m := v.layout.Marks[i]
			style := base
			switch {
			case m.Selected:
				style = selected
			case i == v.hover:
				style = hover
			}
			glyph := '█'
			if m.R*sx < 1 {
				glyph = '●'
			}
			screen.SetContent(v.plotX+c, v.plotY+r, glyph, nil, style)
		}
	}
}

func (v *ScatterView) drawBrush(screen tcell.Screen) {
	if v.brush == nil {
		return
	}
	c0, r0 := v.layout.PlotToCell(v.brush.X0, v.brush.Y0, v.cols, v.rows)
	c1, r1 := v.layout.PlotToCell(v.brush.X1, v.brush.Y1, v.cols, v.rows)
	style := tcell.StyleDefault.
		Background(tcell.GetColor(v.theme.Background)).
		Foreground(tcell.GetColor(v.theme.Track))
	for r := r0; r <= r1 && r < v.rows; r++ {
		for c := c0; c <= c1 && c < v.cols; c++ {
			if r >= 0 && c >= 0 {
				screen.SetContent(v.plotX+c, v.plotY+r, '░', nil, style)
			}
		}
	}
}

func (v *ScatterView) drawTooltip(screen tcell.Screen) {
	if v.hover < 0 || v.hover >= len(v.layout.Marks) {
		return
	}
	c := v.layout.Marks[v.hover].Commit
	lines := components.TooltipLines(c, v.cfg.Timezone, v.cfg.TimeLayout())
	lines = append(lines, "[gray]"+c.URL+"[-]")

	w := components.TooltipWidth(lines) + 2
	h := len(lines) + 2
	tx, ty := components.PlaceTooltip(v.mouseX-v.plotX, v.mouseY-v.plotY, w, h, v.cols, v.rows, 1)
	tx += v.plotX
	ty += v.plotY

	box := tcell.StyleDefault.
		Background(tcell.GetColor(v.theme.Track)).
		Foreground(tcell.GetColor(v.theme.Foreground))
	for r := 0; r < h; r++ {
		for col := 0; col < w; col++ {
			screen.SetContent(tx+col, ty+r, ' ', nil, box)
		}
	}
	for i, l := range lines {
		tview.Print(screen, l, tx+1, ty+1+i, w-2, tview.AlignLeft, tcell.GetColor(v.theme.Foreground))
	}
}

// markAt returns the mark under a screen position, or -1
func (v *ScatterView) markAt(x, y int) int {
	c, r := x-v.plotX, y-v.plotY
	if r < 0 || r >= len(v.grid) || c < 0 || c >= len(v.grid[r]) {
		return -1
	}
	return v.grid[r][c]
}

func (v *ScatterView) clampCell(x, y int) (int, int) {
	c, r := x-v.plotX, y-v.plotY
	c = max(0, min(c, v.cols-1))
	r = max(0, min(r, v.rows-1))
	return c, r
}

func (v *ScatterView) updateBrush(x, y int) {
	if v.layout == nil || v.cols <= 0 || v.rows <= 0 {
		return
	}
	ac, ar := v.clampCell(v.dragX, v.dragY)
	bc, br := v.clampCell(x, y)
	ax, ay := v.layout.CellToPlot(ac, ar, v.cols, v.rows)
	bx, by := v.layout.CellToPlot(bc, br, v.cols, v.rows)

	// widen by half a cell so the brush covers whole cells
	hw := v.layout.Area.Width / float64(v.cols) / 2
	hh := v.layout.Area.Height / float64(v.rows) / 2
	b := components.NewBrush(ax, ay, bx, by)
	b.X0, b.Y0, b.X1, b.Y1 = b.X0-hw, b.Y0-hh, b.X1+hw, b.Y1+hh
	v.brush = &b
	v.layout.Select(v.brush)
}

// MouseHandler handles hover and brushing
func (v *ScatterView) MouseHandler() func(action tview.MouseAction, event *tcell.EventMouse, setFocus func(p tview.Primitive)) (consumed bool, capture tview.Primitive) {
	return v.WrapMouseHandler(func(action tview.MouseAction, event *tcell.EventMouse, setFocus func(p tview.Primitive)) (consumed bool, capture tview.Primitive) {
		x, y := event.Position()
		if !v.dragging && !v.InRect(x, y) {
			v.hover = -1
			return false, nil
		}

		switch action {
		case tview.MouseMove:
			v.mouseX, v.mouseY = x, y
			if v.dragging {
				v.updateBrush(x, y)
				return true, v
			}
			v.hover = v.markAt(x, y)
			return true, nil
		case tview.MouseLeftDown:
			setFocus(v)
			v.dragging = true
			v.dragX, v.dragY = x, y
			v.hover = -1
			return true, v
		case tview.MouseLeftUp:
			if !v.dragging {
				return false, nil
			}
			v.dragging = false
			if x == v.dragX && y == v.dragY {
				// a click without a drag clears the brush
				v.brush = nil
				if v.layout != nil {
					v.layout.Select(nil)
				}
			} else {
				v.updateBrush(x, y)
			}
			v.notifySelect()
			return true, nil
		}
		return false, nil
	})
}

// InputHandler clears the brush on Esc
func (v *ScatterView) InputHandler() func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
	return v.WrapInputHandler(func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
		if event.Key() == tcell.KeyEsc {
			v.ClearBrush()
		}
	})
}

// Root returns the root primitive
func (v *ScatterView) Root() tview.Primitive {
	return v
}

// GetFocusable returns the focusable component
func (v *ScatterView) GetFocusable() tview.Primitive {
	return v
}
