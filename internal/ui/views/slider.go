package views

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/audi70r/gitstory/internal/cursor"
	"github.com/audi70r/gitstory/internal/stats"
	"github.com/audi70r/gitstory/internal/story"
	"github.com/audi70r/gitstory/internal/ui/components"
)

// SliderView is the time slider under the scatter plot
type SliderView struct {
	*tview.Box

	slider *cursor.Slider
	cursor *cursor.Cursor
	times  []time.Time
	step   float64
	tz     *time.Location
	theme  components.Theme

	trackX, trackW int
	dragging       bool
}

// NewSliderView creates a new slider view; step is the keyboard increment
func NewSliderView(step float64, tz *time.Location, theme components.Theme) *SliderView {
	v := &SliderView{
		Box:   tview.NewBox(),
		step:  step,
		tz:    tz,
		theme: theme,
	}
	v.SetBorder(true).SetTitle(" Time ")
	v.SetBackgroundColor(tcell.GetColor(theme.Background))
	return v
}

// SetData binds the slider to commits and the cursor it drives
func (v *SliderView) SetData(commits []*stats.Commit, s *cursor.Slider, c *cursor.Cursor) {
	v.slider = s
	v.cursor = c
	v.times = make([]time.Time, len(commits))
	for i, cm := range commits {
		v.times[i] = cm.Datetime
	}
}

// Set moves the slider to value and seeks the cursor
func (v *SliderView) Set(value float64) {
	if v.slider == nil || v.cursor == nil {
		return
	}
	v.slider.Set(value, v.cursor)
}

// Nudge moves the slider by steps increments
func (v *SliderView) Nudge(steps int) {
	if v.slider == nil {
		return
	}
	v.Set(v.slider.Value() + float64(steps)*v.step)
}

// Sync follows a cursor moved by another input
func (v *SliderView) Sync(c *cursor.Cursor) {
	if v.slider == nil {
		return
	}
	v.slider.Sync(c.At())
}

// SetTheme switches colors
func (v *SliderView) SetTheme(t components.Theme) {
	v.theme = t
	v.SetBackgroundColor(tcell.GetColor(t.Background))
}

// Label describes the current cursor position
func (v *SliderView) Label() string {
	if v.cursor == nil || len(v.times) == 0 {
		return "[gray]No commits loaded[-]"
	}
	return fmt.Sprintf("Showing [::b]%d[::-] of %d commits through %s",
		len(v.cursor.Visible()), len(v.times), story.FullDateTime(v.cursor.At(), v.tz))
}

// Draw draws the label and the density track
func (v *SliderView) Draw(screen tcell.Screen) {
	v.Box.DrawForSubclass(screen, v)
	x, y, width, height := v.GetInnerRect()
	if width <= 0 || height <= 0 {
		return
	}
	fg := tcell.GetColor(v.theme.Foreground)
	tview.Print(screen, v.Label(), x, y, width, tview.AlignLeft, fg)
	if height < 2 || len(v.times) == 0 {
		return
	}

	v.trackX, v.trackW = x, width
	counts := components.Density(v.times, v.times[0], v.times[len(v.times)-1], width)
	filled := int(v.slider.Value() / cursor.SliderMax * float64(width))
	tview.Print(screen, components.RenderTrack(counts, filled, v.theme.Accent, v.theme.Track),
		x, y+1, width, tview.AlignLeft, fg)
}

func (v *SliderView) valueAt(x int) float64 {
	if v.trackW <= 1 {
		return cursor.SliderMax
	}
	return float64(x-v.trackX) / float64(v.trackW-1) * cursor.SliderMax
}

// MouseHandler moves the slider on click and drag
func (v *SliderView) MouseHandler() func(action tview.MouseAction, event *tcell.EventMouse, setFocus func(p tview.Primitive)) (consumed bool, capture tview.Primitive) {
	return v.WrapMouseHandler(func(action tview.MouseAction, event *tcell.EventMouse, setFocus func(p tview.Primitive)) (consumed bool, capture tview.Primitive) {
		x, y := event.Position()
		if !v.dragging && !v.InRect(x, y) {
			return false, nil
		}
		switch action {
		case tview.MouseLeftDown:
			setFocus(v)
			v.dragging = true
			v.Set(v.valueAt(x))
			return true, v
		case tview.MouseMove:
			if v.dragging {
				v.Set(v.valueAt(x))
				return true, v
			}
		case tview.MouseLeftUp:
			v.dragging = false
			return true, nil
		case tview.MouseScrollUp:
			v.Nudge(1)
			return true, nil
		case tview.MouseScrollDown:
			v.Nudge(-1)
			return true, nil
		}
		return false, nil
	})
}

// InputHandler moves the slider with the arrow keys
func (v *SliderView) InputHandler() func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
	return v.WrapInputHandler(func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
		switch event.Key() {
		case tcell.KeyLeft:
			v.Nudge(-1)
		case tcell.KeyRight:
			v.Nudge(1)
		case tcell.KeyHome:
			v.Set(0)
		case tcell.KeyEnd:
			v.Set(cursor.SliderMax)
		}
	})
}

// Root returns the root primitive
func (v *SliderView) Root() tview.Primitive {
	return v
}

// GetFocusable returns the focusable component
func (v *SliderView) GetFocusable() tview.Primitive {
	return v
}
