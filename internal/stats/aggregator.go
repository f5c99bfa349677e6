package stats

import (
	"sort"
	"time"

	"github.com/audi70r/gitstory/internal/git"
)

// URLFunc builds the link for a commit id
type URLFunc func(id string) string

// Aggregator groups edit events into commits
type Aggregator struct {
	path     string
	timezone *time.Location
	url      URLFunc

	events []git.EditEvent
	order  []string // commit ids in first-appearance order
	lines  LineIndex
}

// NewAggregator creates a new commit aggregator
func NewAggregator(path string, tz *time.Location, url URLFunc) *Aggregator {
	if tz == nil {
		tz = time.Local
	}
	return &Aggregator{
		path:     path,
		timezone: tz,
		url:      url,
		lines:    make(LineIndex),
	}
}

// ProcessEvent adds one edit event
func (a *Aggregator) ProcessEvent(e git.EditEvent) {
	a.events = append(a.events, e)

	if _, ok := a.lines[e.Commit]; !ok {
		a.order = append(a.order, e.Commit)
	}
	a.lines[e.Commit] = append(a.lines[e.Commit], e)
}

// Finalize builds the commit list, sorted ascending by Datetime with ties
// broken by commit id
func (a *Aggregator) Finalize() *Repository {
	commits := make([]*Commit, 0, len(a.order))

	for _, id := range a.order {
		lines := a.lines[id]
		first := lines[0]
		local := first.Datetime.In(a.timezone)

		c := &Commit{
			ID:         id,
			Author:     first.Author,
			Date:       first.Date,
			Time:       first.Time,
			Timezone:   first.Timezone,
			Datetime:   first.Datetime,
			HourFrac:   float64(local.Hour()) + float64(local.Minute())/60,
			TotalLines: len(lines),
		}
		if a.url != nil {
			c.URL = a.url(id)
		}
		commits = append(commits, c)
	}

	SortCommits(commits)

	return &Repository{
		Path:    a.path,
		Events:  a.events,
		Commits: commits,
		Lines:   a.lines,
	}
}

// SortCommits orders commits ascending by Datetime, then by id
func SortCommits(commits []*Commit) {
	sort.SliceStable(commits, func(i, j int) bool {
		if !commits[i].Datetime.Equal(commits[j].Datetime) {
			return commits[i].Datetime.Before(commits[j].Datetime)
		}
		return commits[i].ID < commits[j].ID
	})
}

// Build aggregates a complete event slice in one call
func Build(path string, events []git.EditEvent, tz *time.Location, url URLFunc) *Repository {
	agg := NewAggregator(path, tz, url)
	for _, e := range events {
		agg.ProcessEvent(e)
	}
	return agg.Finalize()
}

// Filter returns the commits at or before until, in order. The result is
// computed on every call.
func (r *Repository) Filter(until time.Time) []*Commit {
	return FilterCommits(r.Commits, until)
}

// FilterCommits returns commits with Datetime <= until
func FilterCommits(commits []*Commit, until time.Time) []*Commit {
	visible := make([]*Commit, 0, len(commits))
	for _, c := range commits {
		if !c.Datetime.After(until) {
			visible = append(visible, c)
		}
	}
	return visible
}

// Extent returns the first and last commit instants
func (r *Repository) Extent() (time.Time, time.Time, bool) {
	if len(r.Commits) == 0 {
		return time.Time{}, time.Time{}, false
	}
	return r.Commits[0].Datetime, r.Commits[len(r.Commits)-1].Datetime, true
}

// LinesOf flattens the edit events of commits, in commit order
func (idx LineIndex) LinesOf(commits []*Commit) []git.EditEvent {
	total := 0
	for _, c := range commits {
		total += len(idx[c.ID])
	}
	lines := make([]git.EditEvent, 0, total)
	for _, c := range commits {
		lines = append(lines, idx[c.ID]...)
	}
	return lines
}

// FileCount returns the number of distinct files a commit touched
func (idx LineIndex) FileCount(id string) int {
	files := make(map[string]struct{})
	for _, e := range idx[id] {
		files[e.File] = struct{}{}
	}
	return len(files)
}

// TopCommits returns the largest commits by line count
func (r *Repository) TopCommits(limit int) []*Commit {
	sorted := make([]*Commit, len(r.Commits))
	copy(sorted, r.Commits)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TotalLines > sorted[j].TotalLines
	})
	if limit > 0 && limit < len(sorted) {
		return sorted[:limit]
	}
	return sorted
}
