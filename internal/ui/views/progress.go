package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

const loadBarWidth = 50

// loadState is what the loading screen shows
type loadState struct {
	status  string
	rows    int
	total   int
	elapsed time.Duration
	err     error
	path    string
}

// ProgressView is the loading screen shown while the edit log is parsed. After
// ShowError it stays up with the failure and ignores further progress.
type ProgressView struct {
	root    *tview.Flex
	banner  *tview.TextView
	body    *tview.TextView
	started time.Time
	state   loadState
}

// NewProgressView creates a new progress view
func NewProgressView() *ProgressView {
	p := &ProgressView{started: time.Now()}
	p.setup()
	return p
}

func (p *ProgressView) setup() {
	p.banner = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter).
		SetText("[::b]Loading Edit Log[-:-:-]")
	p.banner.SetBackgroundColor(tcell.ColorDarkBlue)

	p.body = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)

	middle := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(nil, 0, 1, false).
		AddItem(p.body, 8, 0, false).
		AddItem(nil, 0, 1, false)

	p.root = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(p.banner, 1, 0, false).
		AddItem(tview.NewFlex().
			AddItem(nil, 0, 1, false).
			AddItem(middle, loadBarWidth+10, 0, false).
			AddItem(nil, 0, 1, false), 0, 1, false)

	p.render()
}

func (p *ProgressView) render() {
	p.state.elapsed = time.Since(p.started)
	p.body.SetText(renderLoad(p.state))
}

// renderLoad formats the loading screen body
func renderLoad(s loadState) string {
	if s.err != nil {
		return fmt.Sprintf("[red]%s[-]\n[white]%s[-]\n\n[gray]press q to quit[-]",
			tview.Escape(s.path), tview.Escape(s.err.Error()))
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("[white]%s[-]\n\n", s.status))

	frac := 0.0
	if s.total > 0 {
		frac = min(1, float64(s.rows)/float64(s.total))
	}
	filled := int(frac * loadBarWidth)
	sb.WriteString(fmt.Sprintf("[green]%s[gray]%s[-]\n%.1f%%\n\n",
		strings.Repeat("█", filled), strings.Repeat("░", loadBarWidth-filled), frac*100))

	rows := humanize.Comma(int64(s.rows))
	if s.total > 0 {
		rows += " / " + humanize.Comma(int64(s.total))
	}
	sb.WriteString(fmt.Sprintf("[yellow]%s[-] rows parsed", rows))
	if secs := s.elapsed.Seconds(); secs >= 1 && s.rows > 0 {
		sb.WriteString(fmt.Sprintf("  [gray]%s rows/s[-]", humanize.Comma(int64(float64(s.rows)/secs))))
	}
	return sb.String()
}

// SetTotal sets the expected number of rows
func (p *ProgressView) SetTotal(total int) {
	p.state.total = total
}

// SetProgress updates the row count; total replaces the estimate when known
func (p *ProgressView) SetProgress(rows, total int) {
	if p.state.err != nil {
		return
	}
	p.state.rows = rows
	if total > 0 {
		p.state.total = total
	}
	p.render()
}

// ShowError replaces the progress display with a load failure
func (p *ProgressView) ShowError(path string, err error) {
	p.state.path, p.state.err = path, err
	p.banner.SetText("[::b]Could Not Load Edit Log[-:-:-]")
	p.banner.SetBackgroundColor(tcell.ColorDarkRed)
	p.render()
}

// SetStatus updates the status message
func (p *ProgressView) SetStatus(status string) {
	if p.state.err != nil {
		return
	}
	p.state.status = tview.Escape(status)
	p.render()
}

// Root returns the root primitive
func (p *ProgressView) Root() tview.Primitive {
	return p.root
}
