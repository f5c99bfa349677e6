package ui

import (
	"fmt"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/sirupsen/logrus"

	"github.com/audi70r/gitstory/internal/config"
	"github.com/audi70r/gitstory/internal/cursor"
	"github.com/audi70r/gitstory/internal/scale"
	"github.com/audi70r/gitstory/internal/stats"
	"github.com/audi70r/gitstory/internal/story"
	"github.com/audi70r/gitstory/internal/ui/components"
	"github.com/audi70r/gitstory/internal/ui/views"
)

const (
	pageCommits = "Commits"
	pageFiles   = "Files"
	pageLog     = "Log"
)

type backgrounder interface {
	SetBackgroundColor(color tcell.Color) *tview.Box
}

// MainView hosts the Commits, Files and Log pages
type MainView struct {
	root      *tview.Flex
	menuList  *tview.List
	viewPages *tview.Pages
	statusBar *tview.TextView
	header    *tview.TextView
	app       *tview.Application
	config    *config.Config
	prefs     *config.Prefs
	log       logrus.FieldLogger
	theme     components.Theme
	themed    []backgrounder

	// Commits page
	scatterView *views.ScatterView
	filesView   *views.FilesView
	statsView   *views.StatsView
	sliderView  *views.SliderView
	storyView   *views.StoryView

	// Files page
	detailView    *views.FilesView
	fileStoryView *views.StoryView

	// Log page
	logView    *views.LogView
	rhythmView *views.RhythmView

	// main drives the Commits page, detail only the Files page breakdown
	main   *cursor.Cursor
	detail *cursor.Cursor
	slider *cursor.Slider

	currentView string
	selected    int
	showingHelp bool
	repo        *stats.Repository
}

// NewMainView creates the main view
func NewMainView(app *tview.Application, cfg *config.Config, prefs *config.Prefs, log logrus.FieldLogger) *MainView {
	m := &MainView{
		app:    app,
		config: cfg,
		prefs:  prefs,
		log:    log,
		theme:  components.ThemeByName(cfg.Theme),
	}

	m.setupLayout()
	return m
}

func (m *MainView) setupLayout() {
	// Create header
	m.header = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)
	m.header.SetBackgroundColor(tcell.ColorDarkBlue)
	m.header.SetText("[::b]gitstory[-:-:-]")

	// Create menu list
	m.menuList = tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan)

	m.menuList.SetBorder(true).SetTitle(" Views ")

	menuItems := []struct {
		name     string
		shortcut rune
	}{
		{pageCommits, '1'},
		{pageFiles, '2'},
		{pageLog, '3'},
	}

	for _, item := range menuItems {
		name := item.name
		m.menuList.AddItem(item.name, "", item.shortcut, func() {
			m.switchView(name)
		})
	}

	// Shared so a line type keeps its color on both pages
	colors := scale.NewOrdinal(scale.Tableau10)

	// Create individual views
	m.scatterView = views.NewScatterView(m.config, m.onSelect)
	m.filesView = views.NewFilesView("Files", colors, m.config.MaxFiles)
	m.statsView = views.NewStatsView(m.config.Timezone)
	m.sliderView = views.NewSliderView(m.config.Slider.Step, m.config.Timezone, m.theme)
	m.storyView = views.NewStoryView("Story", m.config.Story.Trigger, m.theme, func(s story.Step) {
		if m.main != nil {
			m.main.Seek(s.Commit.Datetime)
		}
	})
	m.detailView = views.NewFilesView("Files in Commit History", colors, m.config.MaxFiles)
	m.fileStoryView = views.NewStoryView("File Story", m.config.Story.Trigger, m.theme, func(s story.Step) {
		if m.detail != nil {
			m.detail.Seek(s.Commit.Datetime)
		}
	})

	m.logView = views.NewLogView(m.config.Timezone, m.config.TimeLayout(), m.jumpTo)
	m.rhythmView = views.NewRhythmView(m.config.Timezone)

	// Commits page: scatter over files, stats over story, slider along the bottom
	left := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(m.scatterView.Root(), 0, 3, false).
		AddItem(m.filesView.Root(), 0, 2, false)
	right := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(m.statsView.Root(), 20, 0, false).
		AddItem(m.storyView.Root(), 0, 1, false)
	top := tview.NewFlex().
		AddItem(left, 0, 2, false).
		AddItem(right, 0, 1, false)
	commitsPage := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(top, 0, 1, false).
		AddItem(m.sliderView.Root(), 4, 0, false)

	// Files page: breakdown beside its own story
	filesPage := tview.NewFlex().
		AddItem(m.detailView.Root(), 0, 2, false).
		AddItem(m.fileStoryView.Root(), 0, 1, false)

	// Log page: commit table over the weekly rhythm
	logPage := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(m.logView.Root(), 0, 1, false).
		AddItem(m.rhythmView.Root(), 16, 0, false)

	// Create view pages
	m.viewPages = tview.NewPages()
	m.viewPages.AddPage(pageCommits, commitsPage, true, true)
	m.viewPages.AddPage(pageFiles, filesPage, true, false)
	m.viewPages.AddPage(pageLog, logPage, true, false)
	m.currentView = pageCommits

	// Create status bar
	m.statusBar = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)
	m.statusBar.SetBackgroundColor(tcell.ColorDarkBlue)
	m.updateStatusBar()

	// Create content area (menu + views)
	contentFlex := tview.NewFlex().
		AddItem(m.menuList, 14, 0, true).
		AddItem(m.viewPages, 0, 1, false)

	// Create main layout
	m.root = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(m.header, 1, 0, false).
		AddItem(contentFlex, 0, 1, true).
		AddItem(m.statusBar, 1, 0, false)

	m.themed = []backgrounder{left, right, top, commitsPage, filesPage, logPage, contentFlex, m.root, m.menuList, m.viewPages}
	m.applyTheme()

	// Set up input handling
	m.root.SetInputCapture(m.handleInput)
}

func (m *MainView) handleInput(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyTab:
		m.cycleFocus(1)
		return nil
	case tcell.KeyBacktab:
		m.cycleFocus(-1)
		return nil
	case tcell.KeyEsc:
		if m.currentView == pageCommits && m.scatterView.ClearBrush() {
			return nil
		}
		if m.app.GetFocus() != m.menuList {
			m.app.SetFocus(m.menuList)
			return nil
		}
	}

	switch event.Rune() {
	case 'q', 'Q':
		m.app.Stop()
		return nil
	case 't':
		m.toggleTheme()
		return nil
	case '[':
		m.sliderView.Nudge(-1)
		return nil
	case ']':
		m.sliderView.Nudge(1)
		return nil
	case '?':
		m.showHelp()
		return nil
	}

	return event
}

// focusOrder lists the focusable primitives of the current page, menu first
func (m *MainView) focusOrder() []tview.Primitive {
	switch m.currentView {
	case pageFiles:
		return []tview.Primitive{m.menuList, m.fileStoryView.GetFocusable(), m.detailView.GetFocusable()}
	case pageLog:
		return []tview.Primitive{m.menuList, m.logView.GetFocusable()}
	}
	return []tview.Primitive{
		m.menuList,
		m.scatterView.GetFocusable(),
		m.storyView.GetFocusable(),
		m.sliderView.GetFocusable(),
		m.filesView.GetFocusable(),
	}
}

func (m *MainView) cycleFocus(dir int) {
	order := m.focusOrder()
	current := m.app.GetFocus()
	next := 0
	for i, p := range order {
		if p == current {
			next = (i + dir + len(order)) % len(order)
			break
		}
	}
	m.app.SetFocus(order[next])
}

func (m *MainView) toggleTheme() {
	m.theme = m.theme.Toggle()
	m.applyTheme()

	if m.prefs != nil {
		m.prefs.ColorScheme = m.theme.Name
		if err := m.prefs.Save(); err != nil {
			m.log.WithError(err).Warn("save preferences")
		}
	}
	m.log.WithField("theme", m.theme.Name).Debug("theme changed")
}

func (m *MainView) applyTheme() {
	applyStyles(m.theme)
	bg := tcell.GetColor(m.theme.Background)
	for _, b := range m.themed {
		b.SetBackgroundColor(bg)
	}
	m.menuList.SetMainTextColor(tcell.GetColor(m.theme.Foreground))

	m.scatterView.SetTheme(m.theme)
	m.filesView.SetTheme(m.theme)
	m.statsView.SetTheme(m.theme)
	m.sliderView.SetTheme(m.theme)
	m.storyView.SetTheme(m.theme)
	m.detailView.SetTheme(m.theme)
	m.fileStoryView.SetTheme(m.theme)
	m.logView.SetTheme(m.theme)
	m.rhythmView.SetTheme(m.theme)
}

func (m *MainView) showHelp() {
	m.showingHelp = !m.showingHelp
	m.updateStatusBar()
}

func (m *MainView) switchView(name string) {
	m.currentView = name
	m.viewPages.SwitchToPage(name)
	m.showingHelp = false
	m.updateStatusBar()
}

// jumpTo scrolls the story to a commit, which moves the main cursor there
func (m *MainView) jumpTo(c *stats.Commit) {
	if m.repo == nil {
		return
	}
	for i, rc := range m.repo.Commits {
		if rc.ID == c.ID {
			m.switchView(pageCommits)
			m.menuList.SetCurrentItem(0)
			m.storyView.JumpTo(i)
			m.app.SetFocus(m.storyView.GetFocusable())
			return
		}
	}
}

func (m *MainView) onSelect(selected []*stats.Commit) {
	m.selected = len(selected)
	m.updateStatusBar()
}

// updateStatusBar shows context-sensitive controls
func (m *MainView) updateStatusBar() {
	if m.showingHelp {
		m.statusBar.SetText("[yellow]Tab[-] Next pane  [yellow]1-3[-] Page  [yellow]↑↓ j/k[-] Scroll story  " +
			"[yellow]n/p[-] Next/prev step  [yellow][ ][-] Move slider  [yellow]drag[-] Brush  " +
			"[yellow]Esc[-] Clear brush  [yellow]t[-] Theme  [yellow]?[-] Close help")
		return
	}

	baseControls := "[yellow]Tab[-] Focus  [yellow]t[-] Theme  [yellow]?[-] Help  [yellow]q[-] Quit"

	var viewControls string
	switch m.currentView {
	case pageCommits:
		viewControls = "[yellow][ ][-] Slider  [yellow]↑↓[-] Story  "
		if m.selected > 0 {
			viewControls = fmt.Sprintf("[green]%d selected[-]  [yellow]Esc[-] Clear  ", m.selected) + viewControls
		}
	case pageFiles:
		viewControls = "[yellow]↑↓[-] Story  "
	case pageLog:
		viewControls = "[yellow]s[-] Sort  [yellow]r[-] Reverse  [yellow]Enter[-] Jump  "
	}

	m.statusBar.SetText(viewControls + baseControls)
}

func (m *MainView) updateHeader() {
	if m.repo == nil || m.main == nil {
		return
	}
	if len(m.repo.Commits) == 0 {
		m.header.SetText(fmt.Sprintf("[::b]gitstory[-:-:-] - %s - no commits", filepath.Base(m.repo.Path)))
		return
	}
	m.header.SetText(fmt.Sprintf("[::b]gitstory[-:-:-] - %s - %s commits, %s lines - through %s",
		filepath.Base(m.repo.Path),
		humanize.Comma(int64(len(m.main.Visible()))),
		humanize.Comma(int64(len(m.main.Lines()))),
		m.main.At().In(m.config.Timezone).Format("Jan 2, 2006 "+m.config.TimeLayout())))
}

// SetData wires the loaded repository into every view and fires the slider
// once at its maximum so everything starts visible
func (m *MainView) SetData(repo *stats.Repository) {
	m.repo = repo
	m.main = cursor.New(repo.Commits, repo.Lines)
	m.detail = cursor.New(repo.Commits, repo.Lines)
	m.slider = cursor.NewSlider(repo.Commits)

	m.scatterView.SetData(repo.Commits)
	m.sliderView.SetData(repo.Commits, m.slider, m.main)
	m.statsView.Refresh(repo.Events, repo.Commits)

	tz := m.config.Timezone
	m.storyView.SetSteps(story.Steps(repo.Commits, repo.Lines, tz, story.ScatterTemplate))
	m.fileStoryView.SetSteps(story.Steps(repo.Commits, repo.Lines, tz, story.FileTemplate))

	m.main.Subscribe(func(c *cursor.Cursor) {
		lines := c.Lines()
		m.scatterView.Refresh(c)
		m.filesView.Refresh(lines)
		m.statsView.Refresh(lines, c.Visible())
		m.sliderView.Sync(c)
		m.logView.Refresh(c.Visible(), c.Index())
		m.rhythmView.Refresh(lines)
		m.updateHeader()
	})
	m.detail.Subscribe(func(c *cursor.Cursor) {
		m.detailView.Refresh(c.Lines())
	})

	m.sliderView.Set(cursor.SliderMax)
	m.detailView.Refresh(m.detail.Lines())
	m.updateHeader()
}

// Root returns the root primitive
func (m *MainView) Root() tview.Primitive {
	return m.root
}

// GetFocusable returns the focusable component
func (m *MainView) GetFocusable() tview.Primitive {
	return m.menuList
}
