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

// RhythmView shows when the visible lines were written across the week
type RhythmView struct {
	root *tview.Flex
	text *tview.TextView
	tz   *time.Location
}

// NewRhythmView creates a new rhythm view
func NewRhythmView(tz *time.Location) *RhythmView {
	if tz == nil {
		tz = time.Local
	}
	v := &RhythmView{tz: tz}
	v.setup()
	return v
}

func (v *RhythmView) setup() {
	v.text = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft)

	v.root = tview.NewFlex().
		AddItem(nil, 1, 0, false).
		AddItem(v.text, 0, 1, false).
		AddItem(nil, 1, 0, false)
	v.root.SetBorder(true).SetTitle(" Weekly Rhythm ")

	v.text.SetText("[gray]No lines visible[-]")
}

// Refresh redraws the grid over events
func (v *RhythmView) Refresh(events []git.EditEvent) {
	v.text.SetText(renderRhythm(stats.WeekHourBreakdown(events, v.tz), v.tz))
}

func renderRhythm(m [7][24]int, tz *time.Location) string {
	total, peakDay, peakHour := 0, 0, 0
	var dayTotals [7]int
	for d, row := range m {
		for h, n := range row {
			total += n
			dayTotals[d] += n
			if n > m[peakDay][peakHour] {
				peakDay, peakHour = d, h
			}
		}
	}
	if total == 0 {
		return "[gray]No lines visible[-]"
	}

	busiest := 0
	weekend := dayTotals[5] + dayTotals[6]
	for d, n := range dayTotals {
		if n > dayTotals[busiest] {
			busiest = d
		}
	}

	return fmt.Sprintf(`[::b]Lines by Weekday and Hour[-:-:-]  [gray](%s)[-]

%s

  Peak:          [green]%s[-] at [green]%s[-] ([cyan]%s[-] lines)
  Busiest day:   [green]%s[-] ([cyan]%s[-] lines)
  Weekend share: [cyan]%.1f%%[-]
`,
		tz.String(),
		components.RenderWeekGrid(m),
		components.Weekdays[peakDay], components.HourLabel(peakHour), humanize.Comma(int64(m[peakDay][peakHour])),
		components.Weekdays[busiest], humanize.Comma(int64(dayTotals[busiest])),
		float64(weekend)/float64(total)*100,
	)
}

// SetTheme switches colors
func (v *RhythmView) SetTheme(t components.Theme) {
	bg := tcell.GetColor(t.Background)
	v.root.SetBackgroundColor(bg)
	v.text.SetBackgroundColor(bg)
	v.text.SetTextColor(tcell.GetColor(t.Foreground))
}

// Root returns the root primitive
func (v *RhythmView) Root() tview.Primitive {
	return v.root
}
