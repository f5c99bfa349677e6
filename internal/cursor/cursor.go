// Package cursor holds the shared "visible up to this instant" state that
// every commit view renders against.
//
// A Cursor is owned by the UI goroutine. Only input handlers (the time slider
// and narrative steps) call Seek; views read through Visible and Lines and are
// notified by subscription. No locking is done: reads and writes never
// interleave within one handler invocation.
package cursor

import (
	"time"

	"github.com/audi70r/gitstory/internal/git"
	"github.com/audi70r/gitstory/internal/scale"
	"github.com/audi70r/gitstory/internal/stats"
)

// Listener is notified after every Seek
type Listener func(c *Cursor)

// Cursor is a time cursor over an ordered commit list
type Cursor struct {
	commits   []*stats.Commit
	index     stats.LineIndex
	at        time.Time
	listeners []Listener
}

// New creates a cursor positioned at the latest commit, so everything is
// visible
func New(commits []*stats.Commit, index stats.LineIndex) *Cursor {
	c := &Cursor{commits: commits, index: index}
	if n := len(commits); n > 0 {
		c.at = commits[n-1].Datetime
	}
	return c
}

// At returns the current instant
func (c *Cursor) At() time.Time {
	return c.at
}

// Seek moves the cursor and notifies listeners in subscription order
func (c *Cursor) Seek(t time.Time) {
	c.at = t
	for _, l := range c.listeners {
		l(c)
	}
}

// Subscribe registers a listener
func (c *Cursor) Subscribe(l Listener) {
	c.listeners = append(c.listeners, l)
}

// Commits returns every commit regardless of the cursor
func (c *Cursor) Commits() []*stats.Commit {
	return c.commits
}

// Visible returns the commits at or before the cursor, recomputed per call
func (c *Cursor) Visible() []*stats.Commit {
	return stats.FilterCommits(c.commits, c.at)
}

// Lines returns the edit events of the visible commits
func (c *Cursor) Lines() []git.EditEvent {
	return c.index.LinesOf(c.Visible())
}

// Index returns the commit-to-lines side table
func (c *Cursor) Index() stats.LineIndex {
	return c.index
}

// Slider maps a 0..100 control onto the commit time extent
type Slider struct {
	scale scale.Time
	value float64
	ok    bool
}

// SliderMax is the value at which the slider shows every commit
const SliderMax = 100

// NewSlider creates a slider over the commit extent, positioned at SliderMax
func NewSlider(commits []*stats.Commit) *Slider {
	s := &Slider{value: SliderMax}
	if n := len(commits); n > 0 {
		s.scale = scale.NewTime(commits[0].Datetime, commits[n-1].Datetime, 0, SliderMax)
		s.ok = true
	}
	return s
}

// Value returns the slider position
func (s *Slider) Value() float64 {
	return s.value
}

// Time returns the instant for slider value v
func (s *Slider) Time(v float64) time.Time {
	return s.scale.Invert(v)
}

// Position returns the slider value for t
func (s *Slider) Position(t time.Time) float64 {
	if !s.ok {
		return SliderMax
	}
	return s.scale.Map(t)
}

// Set moves the slider, clamped to [0, SliderMax], and seeks the cursor to
// the inverted instant. It returns the instant.
func (s *Slider) Set(v float64, c *Cursor) time.Time {
	if v < 0 {
		v = 0
	}
	if v > SliderMax {
		v = SliderMax
	}
	s.value = v
	if !s.ok {
		return c.At()
	}
	t := s.Time(v)
	c.Seek(t)
	return t
}

// Sync moves the slider to t without seeking, used when another input
// driver moved the cursor
func (s *Slider) Sync(t time.Time) {
	v := s.Position(t)
	if v < 0 {
		v = 0
	}
	if v > SliderMax {
		v = SliderMax
	}
	s.value = v
}
