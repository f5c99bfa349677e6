package stats

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/audi70r/gitstory/internal/git"
)

func ev(commit, file string, line int, at time.Time) git.EditEvent {
	return git.EditEvent{
		Commit:   commit,
		File:     file,
		Line:     line,
		Type:     "js",
		Author:   "Ana",
		Date:     time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, at.Location()),
		Timezone: "Z",
		Datetime: at,
	}
}

func url(id string) string { return "https://example.com/commit/" + id }

func TestSingleCommitRoundTrip(t *testing.T) {
	at := time.Date(2025, 2, 10, 14, 30, 0, 0, time.UTC)
	events := []git.EditEvent{
		ev("abc", "x.js", 10, at),
		ev("abc", "x.js", 20, at),
		ev("abc", "x.js", 5, at),
	}

	repo := Build("loc.csv", events, time.UTC, url)
	require.Len(t, repo.Commits, 1)

	c := repo.Commits[0]
	assert.Equal(t, "abc", c.ID)
	assert.Equal(t, 3, c.TotalLines)
	assert.Equal(t, "https://example.com/commit/abc", c.URL)
	assert.Equal(t, "Ana", c.Author)
	assert.InDelta(t, 14.5, c.HourFrac, 1e-9)

	groups := FileGroups(repo.Lines.LinesOf(repo.Commits))
	require.Len(t, groups, 1)
	assert.Equal(t, "x.js", groups[0].Name)
	assert.Len(t, groups[0].Lines, 3)
}

func TestCommitsSortedAndAggregated(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	var events []git.EditEvent
	// events arrive newest first and interleaved
	for i := 9; i >= 0; i-- {
		id := fmt.Sprintf("c%d", i)
		for j := 0; j <= i; j++ {
			events = append(events, ev(id, fmt.Sprintf("f%d.js", j%3), j+1, base.Add(time.Duration(i)*time.Hour)))
		}
	}
	// tie on timestamp
	events = append(events, ev("b-tie", "t.js", 1, base), ev("a-tie", "t.js", 2, base))

	repo := Build("", events, time.UTC, nil)
	require.Len(t, repo.Commits, 12)

	for i := 0; i+1 < len(repo.Commits); i++ {
		assert.False(t, repo.Commits[i+1].Datetime.Before(repo.Commits[i].Datetime), "order at %d", i)
	}
	assert.Equal(t, "a-tie", repo.Commits[0].ID)
	assert.Equal(t, "b-tie", repo.Commits[1].ID)
	assert.Equal(t, "c0", repo.Commits[2].ID)

	for _, c := range repo.Commits {
		n := 0
		for _, e := range repo.Events {
			if e.Commit == c.ID {
				n++
			}
		}
		assert.Equal(t, n, c.TotalLines, c.ID)
		assert.Len(t, repo.Lines[c.ID], c.TotalLines)
	}
}

func TestFirstEventIsRepresentative(t *testing.T) {
	first := ev("abc", "a.js", 1, time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC))
	second := ev("abc", "b.js", 1, time.Date(2025, 3, 2, 9, 0, 0, 0, time.UTC))
	second.Author = "Bo"

	repo := Build("", []git.EditEvent{first, second}, time.UTC, nil)
	assert.Equal(t, "Ana", repo.Commits[0].Author)
	assert.True(t, repo.Commits[0].Datetime.Equal(first.Datetime))
	assert.Equal(t, 2, repo.Lines.FileCount("abc"))
}

func TestHourFracUsesDisplayTimezone(t *testing.T) {
	at := time.Date(2025, 3, 1, 20, 45, 0, 0, time.UTC)
	tz := time.FixedZone("UTC-8", -8*3600)
	repo := Build("", []git.EditEvent{ev("abc", "a.js", 1, at)}, tz, nil)
	assert.InDelta(t, 12.75, repo.Commits[0].HourFrac, 1e-9)
}

func TestFilterMonotonic(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	var events []git.EditEvent
	for i := 0; i < 20; i++ {
		events = append(events, ev(fmt.Sprintf("c%02d", i), "a.js", 1, base.Add(time.Duration(i*7)*time.Hour)))
	}
	repo := Build("", events, time.UTC, nil)

	prev := map[string]bool{}
	for h := -10; h < 20*7+10; h += 3 {
		visible := repo.Filter(base.Add(time.Duration(h) * time.Hour))
		cur := map[string]bool{}
		for _, c := range visible {
			cur[c.ID] = true
		}
		for id := range prev {
			assert.True(t, cur[id], "commit %s dropped at hour %d", id, h)
		}
		prev = cur
	}
	assert.Len(t, prev, 20)

	lo, hi, ok := repo.Extent()
	require.True(t, ok)
	assert.Len(t, repo.Filter(hi), 20)
	assert.Len(t, repo.Filter(lo.Add(-time.Nanosecond)), 0)
}

func TestPeriodOfDay(t *testing.T) {
	tests := []struct {
		hour int
		want Period
	}{
		{0, Night}, {4, Night}, {5, Morning}, {11, Morning}, {12, Afternoon},
		{16, Afternoon}, {17, Evening}, {20, Evening}, {21, Night}, {23, Night},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PeriodOfDay(tt.hour), "hour %d", tt.hour)
	}
}

func TestSummarize(t *testing.T) {
	day := time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)
	events := []git.EditEvent{
		ev("a", "x.js", 10, day.Add(9*time.Hour)),
		ev("a", "x.js", 20, day.Add(9*time.Hour)),
		ev("a", "y.css", 5, day.Add(9*time.Hour)),
		ev("b", "y.css", 40, day.Add(22*time.Hour)),
		ev("b", "z.html", 40, day.Add(22*time.Hour)),
	}
	repo := Build("", events, time.UTC, nil)

	s := Summarize(repo.Events, repo.Commits, time.UTC)
	assert.True(t, s.HasData)
	assert.Equal(t, 5, s.TotalLOC)
	assert.Equal(t, 2, s.TotalCommits)
	assert.Equal(t, 3, s.Files)
	// y.css and z.html tie at 40; the smaller path wins
	assert.Equal(t, "y.css", s.LongestFile)
	assert.Equal(t, 40, s.MaxFileLen)
	assert.InDelta(t, (20.0+40+40)/3, s.AvgFileLen, 1e-9)
	assert.Equal(t, Morning, s.TopPeriod)
}

func TestSummarizeTieUsesFixedPeriodOrder(t *testing.T) {
	day := time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)
	events := []git.EditEvent{
		ev("a", "x.js", 1, day.Add(23*time.Hour)),
		ev("b", "x.js", 2, day.Add(18*time.Hour)),
	}
	s := Summarize(events, nil, time.UTC)
	assert.Equal(t, Evening, s.TopPeriod)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil, nil, time.UTC)
	assert.False(t, s.HasData)
	assert.Zero(t, s.TotalLOC)
	assert.Empty(t, s.LongestFile)
	assert.Empty(t, s.TopPeriod)
}

func TestFileGroupsOrdering(t *testing.T) {
	at := time.Date(2025, 2, 10, 9, 0, 0, 0, time.UTC)
	lines := []git.EditEvent{
		ev("a", "b.js", 1, at),
		ev("a", "a.js", 1, at),
		ev("a", "c.js", 1, at),
		ev("a", "c.js", 2, at),
		ev("a", "a.js", 2, at),
	}
	groups := FileGroups(lines)
	require.Len(t, groups, 3)
	assert.Equal(t, "a.js", groups[0].Name)
	assert.Equal(t, "c.js", groups[1].Name)
	assert.Equal(t, "b.js", groups[2].Name)

	assert.Empty(t, FileGroups(nil))
}

func TestTypeCounts(t *testing.T) {
	at := time.Date(2025, 2, 10, 9, 0, 0, 0, time.UTC)
	g := FileGroup{Name: "index.html"}
	for _, typ := range []string{"html", "css", "html", "js"} {
		e := ev("a", "index.html", 1, at)
		e.Type = typ
		g.Lines = append(g.Lines, e)
	}
	order, counts := g.TypeCounts()
	assert.Equal(t, []string{"html", "css", "js"}, order)
	assert.Equal(t, 2, counts["html"])
}

func TestTopCommits(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	var events []git.EditEvent
	for i, n := range []int{2, 5, 1} {
		for j := 0; j < n; j++ {
			events = append(events, ev(fmt.Sprintf("c%d", i), "a.js", j, base.Add(time.Duration(i)*time.Hour)))
		}
	}
	repo := Build("", events, time.UTC, nil)
	top := repo.TopCommits(2)
	require.Len(t, top, 2)
	assert.Equal(t, "c1", top[0].ID)
	assert.Equal(t, "c0", top[1].ID)
}

func TestHourBreakdown(t *testing.T) {
	at := time.Date(2025, 3, 1, 20, 45, 0, 0, time.UTC)
	tz := time.FixedZone("UTC-8", -8*3600)
	counts := HourBreakdown([]git.EditEvent{
		ev("abc", "a.js", 1, at),
		ev("abc", "a.js", 2, at),
		ev("def", "a.js", 3, at.Add(time.Hour)),
	}, tz)
	assert.Equal(t, 2, counts[12])
	assert.Equal(t, 1, counts[13])
	assert.Equal(t, 0, counts[20])
}

func TestWeekHourBreakdown(t *testing.T) {
	sunday := time.Date(2025, 2, 9, 23, 30, 0, 0, time.UTC)
	events := []git.EditEvent{
		ev("a", "x.js", 1, sunday),
		ev("a", "x.js", 2, sunday),
		ev("b", "x.js", 3, sunday.Add(time.Hour)),
	}

	m := WeekHourBreakdown(events, time.UTC)
	assert.Equal(t, 2, m[6][23])
	assert.Equal(t, 1, m[0][0])

	shifted := WeekHourBreakdown(events, time.FixedZone("UTC+2", 2*3600))
	assert.Equal(t, 2, shifted[0][1])
	assert.Equal(t, 1, shifted[0][2])
}
