package views

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/audi70r/gitstory/internal/stats"
	"github.com/audi70r/gitstory/internal/ui/components"
)

// Sortable log columns
const (
	sortDate = iota + 1
	sortCommit
	sortAuthor
	sortLines
	sortFiles
)

// LogView lists the visible commits in a sortable table
type LogView struct {
	root    *tview.Flex
	table   *tview.Table
	info    *tview.TextView
	sortCol int
	sortAsc bool
	columns []string
	tz      *time.Location
	layout  string
	onJump  func(c *stats.Commit)

	commits []*stats.Commit
	index   stats.LineIndex
}

// NewLogView creates a new log view. onJump runs when a row is chosen.
func NewLogView(tz *time.Location, timeLayout string, onJump func(c *stats.Commit)) *LogView {
	v := &LogView{
		sortCol: sortDate,
		sortAsc: true,
		columns: []string{"#", "Date", "Commit", "Author", "Lines", "Files"},
		tz:      tz,
		layout:  "2006-01-02 " + timeLayout,
		onJump:  onJump,
	}
	v.setup()
	return v
}

func (v *LogView) setup() {
	v.table = tview.NewTable().
		SetSelectable(true, false).
		SetFixed(1, 0).
		SetSeparator(' ')

	v.table.SetSelectedFunc(func(row, _ int) {
		if c := v.commitAt(row); c != nil && v.onJump != nil {
			v.onJump(c)
		}
	})
	v.table.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Rune() {
		case 's':
			v.CycleSortColumn()
			v.render()
			return nil
		case 'r':
			v.ReverseSortOrder()
			v.render()
			return nil
		}
		return event
	})

	v.info = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)

	v.root = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(v.table, 0, 1, true).
		AddItem(v.info, 1, 0, false)
	v.root.SetBorder(true).SetTitle(" Commit Log ")

	v.renderHeader()
}

func (v *LogView) renderHeader() {
	for col, name := range v.columns {
		cell := tview.NewTableCell(name).
			SetTextColor(tcell.ColorYellow).
			SetSelectable(false).
			SetAttributes(tcell.AttrBold)

		if col == v.sortCol {
			arrow := "▼"
			if v.sortAsc {
				arrow = "▲"
			}
			cell.SetText(name + arrow)
		}

		v.table.SetCell(0, col, cell)
	}
}

// Refresh shows the given commits; index supplies per-commit file counts
func (v *LogView) Refresh(commits []*stats.Commit, index stats.LineIndex) {
	v.commits = append(v.commits[:0], commits...)
	v.index = index
	v.render()
}

func (v *LogView) render() {
	for row := v.table.GetRowCount() - 1; row > 0; row-- {
		v.table.RemoveRow(row)
	}
	v.sortCommits()

	for i, c := range v.commits {
		row := i + 1
		v.table.SetCell(row, 0, tview.NewTableCell(fmt.Sprintf("%d", i+1)).
			SetTextColor(tcell.ColorDarkGray).
			SetAlign(tview.AlignRight))

		v.table.SetCell(row, 1, tview.NewTableCell(c.Datetime.In(v.tz).Format(v.layout)))

		v.table.SetCell(row, 2, tview.NewTableCell(shortID(c.ID)).
			SetTextColor(tcell.ColorLightCyan))

		v.table.SetCell(row, 3, tview.NewTableCell(c.Author).
			SetExpansion(1))

		v.table.SetCell(row, 4, tview.NewTableCell(humanize.Comma(int64(c.TotalLines))).
			SetTextColor(tcell.ColorGreen).
			SetAlign(tview.AlignRight))

		v.table.SetCell(row, 5, tview.NewTableCell(fmt.Sprintf("%d", v.index.FileCount(c.ID))).
			SetAlign(tview.AlignRight))
	}

	v.info.SetText(fmt.Sprintf("[yellow]%d[-] commits | Sort: [green]%s[-] | [s] cycle column, [r] reverse, [Enter] jump",
		len(v.commits), v.columns[v.sortCol]))

	v.renderHeader()
}

func (v *LogView) sortCommits() {
	less := func(a, b *stats.Commit) bool {
		switch v.sortCol {
		case sortCommit:
			return a.ID < b.ID
		case sortAuthor:
			return strings.ToLower(a.Author) < strings.ToLower(b.Author)
		case sortLines:
			return a.TotalLines < b.TotalLines
		case sortFiles:
			return v.index.FileCount(a.ID) < v.index.FileCount(b.ID)
		default:
			return a.Datetime.Before(b.Datetime)
		}
	}
	sort.SliceStable(v.commits, func(i, j int) bool {
		if v.sortAsc {
			return less(v.commits[i], v.commits[j])
		}
		return less(v.commits[j], v.commits[i])
	})
}

func (v *LogView) commitAt(row int) *stats.Commit {
	if row < 1 || row > len(v.commits) {
		return nil
	}
	return v.commits[row-1]
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// CycleSortColumn cycles through sort columns
func (v *LogView) CycleSortColumn() {
	v.sortCol++
	if v.sortCol >= len(v.columns) {
		v.sortCol = sortDate // skip rank column
	}
}

// ReverseSortOrder reverses the sort order
func (v *LogView) ReverseSortOrder() {
	v.sortAsc = !v.sortAsc
}

// SetTheme switches colors
func (v *LogView) SetTheme(t components.Theme) {
	bg := tcell.GetColor(t.Background)
	v.root.SetBackgroundColor(bg)
	v.table.SetBackgroundColor(bg)
	v.info.SetBackgroundColor(bg)
	v.info.SetTextColor(tcell.GetColor(t.Foreground))
}

// Root returns the root primitive
func (v *LogView) Root() tview.Primitive {
	return v.root
}

// GetFocusable returns the focusable component
func (v *LogView) GetFocusable() tview.Primitive {
	return v.table
}
