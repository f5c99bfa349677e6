package views

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/audi70r/gitstory/internal/git"
	"github.com/audi70r/gitstory/internal/stats"
	"github.com/audi70r/gitstory/internal/ui/components"
)

const placeholder = "—"

// StatsView displays summary statistics for the visible lines
type StatsView struct {
	root *tview.Flex
	text *tview.TextView
	tz   *time.Location
}

// NewStatsView creates a new stats view
func NewStatsView(tz *time.Location) *StatsView {
	v := &StatsView{tz: tz}
	v.setup()
	return v
}

func (v *StatsView) setup() {
	v.text = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft)

	v.root = tview.NewFlex().
		AddItem(nil, 1, 0, false).
		AddItem(v.text, 0, 1, false).
		AddItem(nil, 1, 0, false)
	v.root.SetBorder(true).SetTitle(" Summary ")

	v.text.SetText(renderSummary(stats.Summary{}, nil, [24]int{}))
}

// Refresh recomputes the summary over events and commits
func (v *StatsView) Refresh(events []git.EditEvent, commits []*stats.Commit) {
	s := stats.Summarize(events, commits, v.tz)
	periods := stats.PeriodBreakdown(events, v.tz)
	v.text.SetText(renderSummary(s, periods, stats.HourBreakdown(events, v.tz)))
}

func renderSummary(s stats.Summary, periods []stats.PeriodCount, hours [24]int) string {
	loc, commits := placeholder, placeholder
	files, longest, avg, period := placeholder, placeholder, placeholder, placeholder
	if s.HasData {
		loc = humanize.Comma(int64(s.TotalLOC))
		commits = humanize.Comma(int64(s.TotalCommits))
		files = humanize.Comma(int64(s.Files))
		longest = fmt.Sprintf("%s [gray](%s lines)[-]", s.LongestFile, humanize.Comma(int64(s.MaxFileLen)))
		avg = fmt.Sprintf("%s lines", humanize.FormatFloat("#,###.#", s.AvgFileLen))
		period = string(s.TopPeriod)
	}

	content := fmt.Sprintf(`[::b]Code Summary[-:-:-]

  Lines of code:   [cyan]%s[-]
  Commits:         [cyan]%s[-]
  Files:           [cyan]%s[-]
  Longest file:    [cyan]%s[-]
  Average length:  [cyan]%s[-]
  Most active:     [cyan]%s[-]
`, loc, commits, files, longest, avg, period)

	if !s.HasData {
		return content
	}
	return content + fmt.Sprintf(`
[::b]Lines by Time of Day[-:-:-]

%s

%s
`, components.RenderPeriodBars(periods, s.TopPeriod, 20), components.RenderHourStrip(hours))
}

// SetTheme switches colors
func (v *StatsView) SetTheme(t components.Theme) {
	bg := tcell.GetColor(t.Background)
	v.root.SetBackgroundColor(bg)
	v.text.SetBackgroundColor(bg)
	v.text.SetTextColor(tcell.GetColor(t.Foreground))
}

// Root returns the root primitive
func (v *StatsView) Root() tview.Primitive {
	return v.root
}
