package views

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/audi70r/gitstory/internal/story"
	"github.com/audi70r/gitstory/internal/ui/components"
)

// StoryView scrolls through narrative steps and reports the step entered at
// the trigger line
type StoryView struct {
	*tview.Box

	title    string
	steps    []story.Step
	scroller *story.Scroller
	trigger  float64
	onEnter  func(story.Step)
	theme    components.Theme

	wrapped [][]string
	width   int
	fired   int
}

// NewStoryView creates a story view. onEnter runs on the UI goroutine each
// time scrolling enters a different step.
func NewStoryView(title string, trigger float64, theme components.Theme, onEnter func(story.Step)) *StoryView {
	v := &StoryView{
		Box:      tview.NewBox(),
		title:    title,
		scroller: story.NewScroller(trigger, 1),
		trigger:  trigger,
		onEnter:  onEnter,
		theme:    theme,
		fired:    -1,
	}
	v.SetBorder(true).SetTitle(" " + title + " ")
	v.SetBackgroundColor(tcell.GetColor(theme.Background))
	return v
}

// SetSteps replaces the narrative
func (v *StoryView) SetSteps(steps []story.Step) {
	v.steps = steps
	v.width = 0
	v.fired = -1
	v.scroller = story.NewScroller(v.trigger, 1)
	v.relayout(v.innerSize())
}

// SetTheme switches colors
func (v *StoryView) SetTheme(t components.Theme) {
	v.theme = t
	v.SetBackgroundColor(tcell.GetColor(t.Background))
}

// Active returns the step at the trigger line, or -1
func (v *StoryView) Active() int {
	return v.scroller.Active()
}

func (v *StoryView) innerSize() (int, int) {
	_, _, w, h := v.GetInnerRect()
	return w - 2, h
}

// relayout rewraps the steps when the width changes and hands the new
// heights to the scroller
func (v *StoryView) relayout(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	if width != v.width || len(v.wrapped) != len(v.steps) {
		v.width = width
		v.wrapped = make([][]string, len(v.steps))
		for i, s := range v.steps {
			v.wrapped[i] = components.WrapTagged(s.Text, width)
		}
	}
	heights := make([]int, len(v.wrapped))
	for i, lines := range v.wrapped {
		heights[i] = len(lines)
	}
	v.scroller.SetLayout(heights, height)
}

// Scroll moves the narrative by delta rows and fires onEnter when a
// different step reaches the trigger line
func (v *StoryView) Scroll(delta int) {
	active, _ := v.scroller.Scroll(delta)
	v.enter(active)
}

// JumpTo scrolls step i onto the trigger line and always fires onEnter, even
// when i is already the active step
func (v *StoryView) JumpTo(i int) {
	active, _ := v.scroller.JumpTo(i)
	v.fired = -1
	v.enter(active)
}

func (v *StoryView) enter(active int) {
	if active < 0 || active == v.fired || active >= len(v.steps) {
		return
	}
	v.fired = active
	if v.onEnter != nil {
		v.onEnter(v.steps[active])
	}
}

// Draw draws the visible part of the narrative
func (v *StoryView) Draw(screen tcell.Screen) {
	v.Box.DrawForSubclass(screen, v)
	x, y, width, height := v.GetInnerRect()
	if width <= 2 || height <= 0 {
		return
	}
	v.relayout(width-2, height)

	if len(v.steps) == 0 {
		tview.Print(screen, "[gray]Nothing to tell yet[-]", x, y+height/2, width, tview.AlignCenter, tcell.ColorDefault)
		return
	}

	active := v.scroller.Active()
	offset := v.scroller.Offset()
	fg := tcell.GetColor(v.theme.Foreground)
	muted := tcell.GetColor(v.theme.Muted)
	accent := tcell.StyleDefault.
		Background(tcell.GetColor(v.theme.Background)).
		Foreground(tcell.GetColor(v.theme.Accent))

	for i, lines := range v.wrapped {
		top := v.scroller.Top(i) - offset
		if top >= height {
			break
		}
		color := muted
		if i == active {
			color = fg
		}
		for j, line := range lines {
			row := top + j
			if row < 0 || row >= height {
				continue
			}
			if i == active {
				screen.SetContent(x, y+row, '▌', nil, accent)
			}
			tview.Print(screen, line, x+2, y+row, width-2, tview.AlignLeft, color)
		}
	}

	if active >= 0 {
		v.SetTitle(fmt.Sprintf(" %s %d/%d ", v.title, active+1, len(v.steps)))
	}
}

// MouseHandler scrolls on the wheel
func (v *StoryView) MouseHandler() func(action tview.MouseAction, event *tcell.EventMouse, setFocus func(p tview.Primitive)) (consumed bool, capture tview.Primitive) {
	return v.WrapMouseHandler(func(action tview.MouseAction, event *tcell.EventMouse, setFocus func(p tview.Primitive)) (consumed bool, capture tview.Primitive) {
		if !v.InRect(event.Position()) {
			return false, nil
		}
		switch action {
		case tview.MouseScrollUp:
			v.Scroll(-1)
			return true, nil
		case tview.MouseScrollDown:
			v.Scroll(1)
			return true, nil
		case tview.MouseLeftClick:
			setFocus(v)
			return true, nil
		}
		return false, nil
	})
}

// InputHandler scrolls with the keyboard
func (v *StoryView) InputHandler() func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
	return v.WrapInputHandler(func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
		_, height := v.innerSize()
		switch event.Key() {
		case tcell.KeyUp:
			v.Scroll(-1)
		case tcell.KeyDown:
			v.Scroll(1)
		case tcell.KeyPgUp:
			v.Scroll(-max(1, height/2))
		case tcell.KeyPgDn:
			v.Scroll(max(1, height/2))
		case tcell.KeyHome:
			v.JumpTo(0)
		case tcell.KeyEnd:
			v.JumpTo(len(v.steps) - 1)
		}
		switch event.Rune() {
		case 'j':
			v.Scroll(1)
		case 'k':
			v.Scroll(-1)
		case 'n':
			v.JumpTo(v.scroller.Active() + 1)
		case 'p':
			v.JumpTo(v.scroller.Active() - 1)
		}
	})
}

// Root returns the root primitive
func (v *StoryView) Root() tview.Primitive {
	return v
}

// GetFocusable returns the focusable component
func (v *StoryView) GetFocusable() tview.Primitive {
	return v
}
