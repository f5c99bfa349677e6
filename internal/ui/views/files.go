package views

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/audi70r/gitstory/internal/git"
	"github.com/audi70r/gitstory/internal/scale"
	"github.com/audi70r/gitstory/internal/stats"
	"github.com/audi70r/gitstory/internal/ui/components"
)

const (
	nameWidth     = 36
	countWidth    = 12
	fallbackUnits = 40
)

// fileRow is the table row owned by one file path; it survives re-renders
// while the path stays visible
type fileRow struct {
	name  *tview.TableCell
	count *tview.TableCell
	units []*tview.TableCell
	size  int
}

func newFileRow(path string) *fileRow {
	display := path
	if len(display) > nameWidth {
		display = "..." + display[len(display)-nameWidth+3:]
	}
	return &fileRow{
		name: tview.NewTableCell(display).
			SetMaxWidth(nameWidth),
		count: tview.NewTableCell("").
			SetAlign(tview.AlignRight),
	}
}

func (r *fileRow) update(g stats.FileGroup, colors *scale.Ordinal, width int) {
	r.size = len(g.Lines)
	r.count.SetText(fmt.Sprintf("%s %s", humanize.Comma(int64(r.size)), pluralLines(r.size)))

	rendered := components.RenderUnits(g.Lines, colors, width)
	for len(r.units) < len(rendered) {
		r.units = append(r.units, tview.NewTableCell("").SetExpansion(1))
	}
	r.units = r.units[:len(rendered)]
	for i, text := range rendered {
		r.units[i].SetText(text)
	}
}

func pluralLines(n int) string {
	if n == 1 {
		return "line"
	}
	return "lines"
}

// FilesView breaks visible lines down by file, one unit mark per line
type FilesView struct {
	root     *tview.Flex
	table    *tview.Table
	info     *tview.TextView
	colors   *scale.Ordinal
	maxFiles int
	theme    components.Theme

	rows    map[string]*fileRow
	rowKeys []string
	entered map[string]bool
}

// NewFilesView creates a new files view. colors is shared between instances
// so a type keeps its color everywhere.
func NewFilesView(title string, colors *scale.Ordinal, maxFiles int) *FilesView {
	v := &FilesView{
		colors:   colors,
		maxFiles: maxFiles,
		theme:    components.DarkTheme,
		rows:     make(map[string]*fileRow),
	}
	v.setup(title)
	return v
}

func (v *FilesView) setup(title string) {
	v.table = tview.NewTable().
		SetSelectable(true, false).
		SetFixed(1, 0).
		SetSeparator(' ')

	v.info = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft)

	v.root = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(v.table, 0, 1, true).
		AddItem(v.info, 1, 0, false)
	v.root.SetBorder(true).SetTitle(" " + title + " ")

	v.renderHeader()
	v.info.SetText("[gray]No lines visible[-]")
}

func (v *FilesView) renderHeader() {
	for col, name := range []string{"File", "Lines", ""} {
		v.table.SetCell(0, col, tview.NewTableCell(name).
			SetTextColor(tcell.ColorYellow).
			SetSelectable(false).
			SetAttributes(tcell.AttrBold))
	}
}

func (v *FilesView) unitWidth() int {
	_, _, w, _ := v.table.GetInnerRect()
	if u := w - nameWidth - countWidth - 2; u >= 10 {
		return u
	}
	return fallbackUnits
}

// Refresh reconciles the table with the given lines, keyed by file path.
// Rows whose path persists are updated in place, new paths get new rows and
// vanished paths are dropped.
func (v *FilesView) Refresh(lines []git.EditEvent) {
	groups := stats.FileGroups(lines)
	total := len(groups)
	if v.maxFiles > 0 && len(groups) > v.maxFiles {
		groups = groups[:v.maxFiles]
	}

	keys := make([]string, len(groups))
	for i, g := range groups {
		keys[i] = g.Name
	}
	diff := components.DiffKeys(v.rowKeys, keys)
	for _, k := range diff.Exit {
		delete(v.rows, k)
	}
	v.entered = make(map[string]bool, len(diff.Enter))
	for _, k := range diff.Enter {
		v.entered[k] = true
		v.rows[k] = newFileRow(k)
	}

	width := v.unitWidth()
	for _, g := range groups {
		v.rows[g.Name].update(g, v.colors, width)
	}
	v.rowKeys = keys
	v.layoutTable()

	if total == 0 {
		v.info.SetText("[gray]No lines visible[-]")
		return
	}
	shown := ""
	if total > len(groups) {
		shown = fmt.Sprintf(" (top %d)", len(groups))
	}
	v.info.SetText(fmt.Sprintf("[yellow]%d[-] files%s, [yellow]%s[-] lines  %s",
		total, shown, humanize.Comma(int64(len(lines))), components.RenderLegend(v.colors)))
}

func (v *FilesView) layoutTable() {
	v.table.Clear()
	v.renderHeader()

	r := 1
	for _, k := range v.rowKeys {
		row := v.rows[k]
		color := tcell.GetColor(v.theme.Foreground)
		if v.entered[k] {
			color = tcell.ColorLightGreen
		}
		row.name.SetTextColor(color)

		v.table.SetCell(r, 0, row.name)
		v.table.SetCell(r, 1, row.count)
		for i, u := range row.units {
			if i > 0 {
				v.table.SetCell(r+i, 0, tview.NewTableCell("").SetSelectable(false))
				v.table.SetCell(r+i, 1, tview.NewTableCell("").SetSelectable(false))
			}
			v.table.SetCell(r+i, 2, u)
		}
		r += max(1, len(row.units))
	}
}

// SetTheme switches colors
func (v *FilesView) SetTheme(t components.Theme) {
	v.theme = t
	bg := tcell.GetColor(t.Background)
	v.root.SetBackgroundColor(bg)
	v.table.SetBackgroundColor(bg)
	v.info.SetBackgroundColor(bg)
	v.info.SetTextColor(tcell.GetColor(t.Foreground))
	v.layoutTable()
}

// Keys returns the file paths currently shown, in order
func (v *FilesView) Keys() []string {
	return append([]string(nil), v.rowKeys...)
}

// row exposes the row object for a path
func (v *FilesView) row(path string) *fileRow {
	return v.rows[path]
}

// Root returns the root primitive
func (v *FilesView) Root() tview.Primitive {
	return v.root
}

// GetFocusable returns the focusable component
func (v *FilesView) GetFocusable() tview.Primitive {
	return v.table
}
