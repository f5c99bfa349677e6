package cursor

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/audi70r/gitstory/internal/git"
	"github.com/audi70r/gitstory/internal/stats"
)

func fixture(t *testing.T, n int) *stats.Repository {
	t.Helper()
	base := time.Date(2024, 11, 3, 7, 13, 29, 417000000, time.UTC)
	var events []git.EditEvent
	for i := 0; i < n; i++ {
		at := base.Add(time.Duration(i) * 37 * time.Hour)
		for j := 0; j <= i%3; j++ {
			events = append(events, git.EditEvent{
				Commit:   fmt.Sprintf("c%02d", i),
				File:     fmt.Sprintf("f%d.js", j),
				Line:     j + 1,
				Datetime: at,
			})
		}
	}
	return stats.Build("", events, time.UTC, nil)
}

func TestSliderInitializationShowsEverything(t *testing.T) {
	repo := fixture(t, 12)
	c := New(repo.Commits, repo.Lines)
	s := NewSlider(repo.Commits)

	var notified int
	c.Subscribe(func(*Cursor) { notified++ })

	at := s.Set(SliderMax, c)

	_, last, _ := repo.Extent()
	assert.True(t, at.Equal(last))
	assert.True(t, c.At().Equal(last))
	assert.Equal(t, repo.Commits, c.Visible())
	assert.Len(t, c.Lines(), len(repo.Events))
	assert.Equal(t, 1, notified)
}

func TestNewCursorAtLatest(t *testing.T) {
	repo := fixture(t, 5)
	c := New(repo.Commits, repo.Lines)
	assert.Len(t, c.Visible(), 5)
	assert.Equal(t, repo.Commits, c.Commits())
}

func TestSliderZeroShowsFirstCommit(t *testing.T) {
	repo := fixture(t, 6)
	c := New(repo.Commits, repo.Lines)
	s := NewSlider(repo.Commits)

	s.Set(0, c)
	visible := c.Visible()
	require.Len(t, visible, 1)
	assert.Equal(t, repo.Commits[0].ID, visible[0].ID)
}

func TestSeekGrowsMonotonically(t *testing.T) {
	repo := fixture(t, 15)
	c := New(repo.Commits, repo.Lines)
	s := NewSlider(repo.Commits)

	prev := 0
	for v := 0.0; v <= SliderMax; v += 2.5 {
		s.Set(v, c)
		n := len(c.Visible())
		assert.GreaterOrEqual(t, n, prev, "value %v", v)
		prev = n
	}
	assert.Equal(t, 15, prev)
}

func TestSetClampsAndSync(t *testing.T) {
	repo := fixture(t, 4)
	c := New(repo.Commits, repo.Lines)
	s := NewSlider(repo.Commits)

	s.Set(250, c)
	assert.Equal(t, float64(SliderMax), s.Value())
	s.Set(-3, c)
	assert.Equal(t, 0.0, s.Value())

	s.Sync(repo.Commits[len(repo.Commits)-1].Datetime)
	assert.InDelta(t, SliderMax, s.Value(), 1e-9)
}

func TestEmptyCursor(t *testing.T) {
	c := New(nil, stats.LineIndex{})
	s := NewSlider(nil)

	s.Set(50, c)
	assert.Empty(t, c.Visible())
	assert.Empty(t, c.Lines())
	assert.True(t, c.At().IsZero())
}

func TestListenersSeeNewValue(t *testing.T) {
	repo := fixture(t, 8)
	c := New(repo.Commits, repo.Lines)

	var seen []int
	c.Subscribe(func(c *Cursor) { seen = append(seen, len(c.Visible())) })
	c.Subscribe(func(c *Cursor) { seen = append(seen, -len(c.Visible())) })

	c.Seek(repo.Commits[2].Datetime)
	c.Seek(repo.Commits[5].Datetime)
	assert.Equal(t, []int{3, -3, 6, -6}, seen)
}
