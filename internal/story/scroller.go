package story

import "math"

// Scroller tracks which narrative step is entered as a viewport scrolls over
// a column of steps. A step is entered once its top reaches the trigger line,
// a fixed fraction of the viewport height.
type Scroller struct {
	heights  []int
	gap      int
	offset   int
	viewport int
	trigger  float64
	active   int
}

// NewScroller creates a scroller; trigger is a fraction of the viewport
func NewScroller(trigger float64, gap int) *Scroller {
	return &Scroller{trigger: trigger, gap: gap, active: -1}
}

// SetLayout updates step heights and viewport size, keeping the offset in
// bounds. It returns the entered step and whether it changed.
func (s *Scroller) SetLayout(heights []int, viewport int) (int, bool) {
	s.heights = heights
	s.viewport = viewport
	s.offset = s.clampOffset(s.offset)
	return s.update()
}

// Scroll moves the viewport by delta rows
func (s *Scroller) Scroll(delta int) (int, bool) {
	s.offset = s.clampOffset(s.offset + delta)
	return s.update()
}

// JumpTo scrolls so that step i sits on the trigger line
func (s *Scroller) JumpTo(i int) (int, bool) {
	if i < 0 || i >= len(s.heights) {
		return s.active, false
	}
	s.offset = s.clampOffset(s.Top(i) - s.triggerRow())
	return s.update()
}

// Active returns the entered step, or -1 before the first one
func (s *Scroller) Active() int {
	return s.active
}

// Offset returns the first visible row
func (s *Scroller) Offset() int {
	return s.offset
}

// Top returns the first row of step i. Steps are preceded by a lead-in as
// tall as the distance to the trigger line, so the first step is entered at
// offset zero.
func (s *Scroller) Top(i int) int {
	top := s.triggerRow()
	for j := 0; j < i && j < len(s.heights); j++ {
		top += s.heights[j] + s.gap
	}
	return top
}

func (s *Scroller) triggerRow() int {
	return int(math.Floor(s.trigger * float64(s.viewport)))
}

func (s *Scroller) clampOffset(off int) int {
	n := len(s.heights)
	if n == 0 {
		return 0
	}
	total := s.Top(n-1) + s.heights[n-1]
	limit := total - s.viewport
	// the last step must be able to reach the trigger line
	if last := s.Top(n-1) - s.triggerRow(); last > limit {
		limit = last
	}
	if off > limit {
		off = limit
	}
	if off < 0 {
		off = 0
	}
	return off
}

func (s *Scroller) update() (int, bool) {
	line := s.offset + s.triggerRow()
	active := -1
	for i := range s.heights {
		if s.Top(i) > line {
			break
		}
		active = i
	}
	changed := active != s.active
	s.active = active
	return active, changed
}
