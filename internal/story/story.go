package story

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/audi70r/gitstory/internal/stats"
)

// Step is one narrative entry bound to a commit
type Step struct {
	Index  int
	Commit *stats.Commit
	Text   string // tview color-tagged
}

// Template renders the narrative text for the i-th commit
type Template func(i int, c *stats.Commit, files int, tz *time.Location) string

// Steps generates one step per commit, in commit order
func Steps(commits []*stats.Commit, index stats.LineIndex, tz *time.Location, tmpl Template) []Step {
	if tz == nil {
		tz = time.Local
	}
	steps := make([]Step, len(commits))
	for i, c := range commits {
		steps[i] = Step{
			Index:  i,
			Commit: c,
			Text:   tmpl(i, c, index.FileCount(c.ID), tz),
		}
	}
	return steps
}

// FullDateTime formats an instant as "Monday, February 10, 2025 at 2:32 PM"
func FullDateTime(t time.Time, tz *time.Location) string {
	return t.In(tz).Format("Monday, January 2, 2006 at 3:04 PM")
}

// ScatterTemplate narrates the commit history next to the scatter plot
func ScatterTemplate(i int, c *stats.Commit, files int, tz *time.Location) string {
	link := "another glorious commit"
	if i == 0 {
		link = "my first commit, and it was glorious"
	}
	return fmt.Sprintf(
		"On %s, I made [::u]%s[::-] [gray](%s)[-]. I edited [cyan]%s[-] %s across [cyan]%d[-] %s. "+
			"Then I looked over all I had made, and I saw that it was very good.",
		FullDateTime(c.Datetime, tz), link, c.URL,
		humanize.Comma(int64(c.TotalLines)), plural(c.TotalLines, "line", "lines"),
		files, plural(files, "file", "files"),
	)
}

// FileTemplate narrates the file breakdown
func FileTemplate(_ int, c *stats.Commit, files int, _ *time.Location) string {
	return fmt.Sprintf("This commit edited [::b]%s[::-] %s across [::b]%d[::-] %s.",
		humanize.Comma(int64(c.TotalLines)), plural(c.TotalLines, "line", "lines"),
		files, plural(files, "file", "files"))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
