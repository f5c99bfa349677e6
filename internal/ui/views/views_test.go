package views

import (
	"fmt"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/audi70r/gitstory/internal/config"
	"github.com/audi70r/gitstory/internal/cursor"
	"github.com/audi70r/gitstory/internal/git"
	"github.com/audi70r/gitstory/internal/scale"
	"github.com/audi70r/gitstory/internal/stats"
	"github.com/audi70r/gitstory/internal/story"
	"github.com/audi70r/gitstory/internal/ui/components"
)

var t0 = time.Date(2025, 2, 10, 9, 0, 0, 0, time.UTC)

func line(commit, file string, n int, at time.Time) git.EditEvent {
	return git.EditEvent{Commit: commit, File: file, Line: n, Type: "js", Author: "Ana", Datetime: at}
}

func fixture() *stats.Repository {
	return stats.Build("loc.csv", []git.EditEvent{
		line("aaa", "a.js", 1, t0),
		line("aaa", "a.js", 2, t0),
		line("bbb", "b.js", 1, t0.Add(24*time.Hour)),
		line("bbb", "a.js", 3, t0.Add(24*time.Hour)),
	}, time.UTC, nil)
}

func TestFilesView_KeyedReconcile(t *testing.T) {
	v := NewFilesView("Files", scale.NewOrdinal(nil), 50)

	v.Refresh([]git.EditEvent{line("aaa", "a.js", 1, t0)})
	require.Equal(t, []string{"a.js"}, v.Keys())
	first := v.row("a.js")
	require.NotNil(t, first)
	assert.True(t, v.entered["a.js"])

	v.Refresh([]git.EditEvent{
		line("aaa", "a.js", 1, t0),
		line("bbb", "b.js", 1, t0),
		line("bbb", "b.js", 2, t0),
	})
	assert.Equal(t, []string{"b.js", "a.js"}, v.Keys())
	assert.Same(t, first, v.row("a.js"), "persisting path keeps its row")
	assert.False(t, v.entered["a.js"])
	assert.True(t, v.entered["b.js"])
	assert.Equal(t, 2, v.row("b.js").size)

	v.Refresh([]git.EditEvent{line("bbb", "b.js", 1, t0)})
	assert.Equal(t, []string{"b.js"}, v.Keys())
	assert.Nil(t, v.row("a.js"))

	v.Refresh(nil)
	assert.Empty(t, v.Keys())
}

func TestFilesView_MaxFiles(t *testing.T) {
	v := NewFilesView("Files", scale.NewOrdinal(nil), 1)
	v.Refresh([]git.EditEvent{
		line("aaa", "a.js", 1, t0),
		line("aaa", "b.js", 1, t0),
		line("aaa", "b.js", 2, t0),
	})
	assert.Equal(t, []string{"b.js"}, v.Keys())
}

func TestFilesView_DefaultShowsEveryFile(t *testing.T) {
	var lines []git.EditEvent
	for i := 0; i < 60; i++ {
		lines = append(lines, line("aaa", fmt.Sprintf("src/f%02d.js", i), 1, t0))
	}
	v := NewFilesView("Files", scale.NewOrdinal(nil), config.Default().MaxFiles)
	v.Refresh(lines)
	assert.Len(t, v.Keys(), 60)
}

func TestRenderSummary_Placeholders(t *testing.T) {
	out := renderSummary(stats.Summary{}, nil, [24]int{})
	assert.Contains(t, out, placeholder)
	assert.NotContains(t, out, "Lines by Time of Day")
}

func TestRenderSummary_WithData(t *testing.T) {
	repo := fixture()
	s := stats.Summarize(repo.Events, repo.Commits, time.UTC)
	out := renderSummary(s, stats.PeriodBreakdown(repo.Events, time.UTC), stats.HourBreakdown(repo.Events, time.UTC))

	assert.Contains(t, out, "a.js")
	assert.Contains(t, out, "morning")
	assert.Contains(t, out, "Lines by Time of Day")
	assert.NotContains(t, out, placeholder)
}

func newStory(t *testing.T, onEnter func(story.Step)) *StoryView {
	t.Helper()
	repo := fixture()
	v := NewStoryView("Story", 0.5, components.DarkTheme, onEnter)
	v.SetRect(0, 0, 40, 12)
	v.SetSteps(story.Steps(repo.Commits, repo.Lines, time.UTC, story.FileTemplate))
	return v
}

func TestStoryView_EntersOnScroll(t *testing.T) {
	var entered []string
	v := newStory(t, func(s story.Step) {
		entered = append(entered, s.Commit.ID)
	})
	assert.Empty(t, entered, "loading does not enter a step")

	v.Scroll(0)
	assert.Equal(t, []string{"aaa"}, entered)

	// same step again does not fire
	v.Scroll(0)
	assert.Equal(t, []string{"aaa"}, entered)

	v.JumpTo(1)
	assert.Equal(t, []string{"aaa", "bbb"}, entered)
	assert.Equal(t, 1, v.Active())

	v.JumpTo(0)
	assert.Equal(t, []string{"aaa", "bbb", "aaa"}, entered)
}

func TestStoryView_DrivesCursor(t *testing.T) {
	repo := fixture()
	c := cursor.New(repo.Commits, repo.Lines)
	v := newStory(t, func(s story.Step) {
		c.Seek(s.Commit.Datetime)
	})

	v.JumpTo(0)
	assert.Len(t, c.Visible(), 1)
	assert.Len(t, c.Lines(), 2)

	v.JumpTo(1)
	assert.Len(t, c.Visible(), 2)
}

func TestStoryView_JumpToActiveStepAfterSlider(t *testing.T) {
	repo := fixture()
	c := cursor.New(repo.Commits, repo.Lines)
	s := NewSliderView(10, time.UTC, components.DarkTheme)
	s.SetData(repo.Commits, cursor.NewSlider(repo.Commits), c)
	var entered []string
	v := newStory(t, func(st story.Step) {
		entered = append(entered, st.Commit.ID)
		c.Seek(st.Commit.Datetime)
	})

	v.JumpTo(1)
	require.Len(t, c.Visible(), 2)

	s.Set(0)
	require.Len(t, c.Visible(), 1)

	v.JumpTo(1)
	assert.Equal(t, []string{"bbb", "bbb"}, entered)
	assert.Len(t, c.Visible(), 2)
	assert.Equal(t, 1, v.Active())

	// scrolling within the active step still does not refire
	v.Scroll(0)
	assert.Len(t, entered, 2)
}

func TestSliderView_SetAndNudge(t *testing.T) {
	repo := fixture()
	c := cursor.New(repo.Commits, repo.Lines)
	v := NewSliderView(10, time.UTC, components.DarkTheme)
	v.SetData(repo.Commits, cursor.NewSlider(repo.Commits), c)

	v.Set(0)
	assert.True(t, c.At().Equal(t0))
	assert.Len(t, c.Visible(), 1)

	v.Nudge(5)
	assert.WithinDuration(t, t0.Add(12*time.Hour), c.At(), time.Second)

	v.Set(250)
	assert.True(t, c.At().Equal(t0.Add(24*time.Hour)))
	assert.Len(t, c.Visible(), 2)
	assert.Contains(t, v.Label(), "Showing [::b]2[::-] of 2 commits")
}

func TestSliderView_NoData(t *testing.T) {
	v := NewSliderView(1, time.UTC, components.DarkTheme)
	v.Set(50)
	v.Nudge(1)
	assert.Contains(t, v.Label(), "No commits loaded")
}

func TestScatterView_Brush(t *testing.T) {
	repo := fixture()
	var selected []*stats.Commit
	v := NewScatterView(config.Default(), func(s []*stats.Commit) { selected = s })
	v.SetData(repo.Commits)

	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	defer screen.Fini()
	screen.SetSize(80, 24)
	v.SetRect(0, 0, 80, 24)
	v.Draw(screen)
	require.Positive(t, v.cols)
	require.Positive(t, v.rows)

	v.dragX, v.dragY = v.plotX, v.plotY
	v.updateBrush(v.plotX+v.cols-1, v.plotY+v.rows-1)
	v.notifySelect()
	assert.Len(t, selected, 2)

	assert.True(t, v.ClearBrush())
	assert.Empty(t, selected)
	assert.False(t, v.ClearBrush())
}

func TestScatterView_RefreshKeepsBrush(t *testing.T) {
	repo := fixture()
	v := NewScatterView(config.Default(), nil)
	v.SetData(repo.Commits)
	v.SetRect(0, 0, 80, 24)

	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	defer screen.Fini()
	screen.SetSize(80, 24)
	v.Draw(screen)

	v.dragX, v.dragY = v.plotX, v.plotY
	v.updateBrush(v.plotX+v.cols-1, v.plotY+v.rows-1)

	c := cursor.New(repo.Commits, repo.Lines)
	c.Seek(t0)
	v.Refresh(c)
	assert.Len(t, v.Selected(), 1)
}

func TestScatterView_LeaveClearsHover(t *testing.T) {
	repo := fixture()
	v := NewScatterView(config.Default(), nil)
	v.SetData(repo.Commits)
	v.SetRect(0, 0, 80, 24)

	v.hover = 0
	consumed, _ := v.MouseHandler()(tview.MouseMove, tcell.NewEventMouse(200, 200, tcell.ButtonNone, tcell.ModNone), func(tview.Primitive) {})
	assert.False(t, consumed)
	assert.Equal(t, -1, v.hover)
}

func TestLogView_SortAndJump(t *testing.T) {
	repo := fixture()
	var jumped *stats.Commit
	v := NewLogView(time.UTC, "15:04", func(c *stats.Commit) { jumped = c })

	v.Refresh(repo.Commits, repo.Lines)
	require.Len(t, v.commits, 2)
	assert.Equal(t, "aaa", v.commitAt(1).ID)
	assert.Equal(t, "2025-02-10 09:00", v.table.GetCell(1, 1).Text)

	v.ReverseSortOrder()
	v.render()
	assert.Equal(t, "bbb", v.commitAt(1).ID)

	// files, descending
	for v.sortCol != sortFiles {
		v.CycleSortColumn()
	}
	v.render()
	assert.Equal(t, "bbb", v.commitAt(1).ID)
	assert.Equal(t, "2", v.table.GetCell(1, 5).Text)

	v.CycleSortColumn()
	assert.Equal(t, sortDate, v.sortCol, "rank column is skipped")

	assert.Nil(t, v.commitAt(0))
	assert.Nil(t, v.commitAt(3))

	v.table.Select(2, 0)
	v.table.InputHandler()(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), func(tview.Primitive) {})
	require.NotNil(t, jumped)
	assert.Equal(t, "aaa", jumped.ID)
}

func TestLogView_RefreshDoesNotReorderInput(t *testing.T) {
	repo := fixture()
	v := NewLogView(time.UTC, "15:04", nil)
	v.ReverseSortOrder()
	v.Refresh(repo.Commits, repo.Lines)
	assert.Equal(t, "aaa", repo.Commits[0].ID)
	assert.Equal(t, "bbb", v.commitAt(1).ID)
}

func TestRenderRhythm(t *testing.T) {
	repo := fixture()
	out := renderRhythm(stats.WeekHourBreakdown(repo.Events, time.UTC), time.UTC)

	// 2025-02-10 is a Monday
	assert.Contains(t, out, "[green]Mon[-] at [green]09:00[-]")
	assert.Contains(t, out, "Weekend share: [cyan]0.0%")

	assert.Equal(t, "[gray]No lines visible[-]", renderRhythm([7][24]int{}, time.UTC))
}

func TestRenderLoad(t *testing.T) {
	out := renderLoad(loadState{status: "Reading loc.csv...", rows: 500, total: 1000, elapsed: 2 * time.Second})
	assert.Contains(t, out, "Reading loc.csv...")
	assert.Contains(t, out, "50.0%")
	assert.Contains(t, out, "[yellow]500 / 1,000[-] rows parsed")
	assert.Contains(t, out, "250 rows/s")

	out = renderLoad(loadState{rows: 20, total: 10})
	assert.Contains(t, out, "100.0%")

	out = renderLoad(loadState{path: "loc.csv", err: git.ErrEmptyLog})
	assert.Contains(t, out, "edit log has no header")
	assert.Contains(t, out, "press q to quit")
}

func TestProgressView_IgnoresProgressAfterError(t *testing.T) {
	p := NewProgressView()
	p.ShowError("loc.csv", git.ErrEmptyLog)
	p.SetProgress(10, 20)
	p.SetStatus("Processing a.js...")
	assert.Zero(t, p.state.rows)
	assert.Empty(t, p.state.status)
}
