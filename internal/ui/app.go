package ui

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/sirupsen/logrus"

	"github.com/audi70r/gitstory/internal/config"
	"github.com/audi70r/gitstory/internal/git"
	"github.com/audi70r/gitstory/internal/stats"
	"github.com/audi70r/gitstory/internal/ui/components"
	"github.com/audi70r/gitstory/internal/ui/views"
)

// App represents the main application
type App struct {
	tview  *tview.Application
	pages  *tview.Pages
	config *config.Config
	prefs  *config.Prefs
	log    logrus.FieldLogger
	repo   *stats.Repository

	// UI components
	progressView *views.ProgressView
	mainView     *MainView
}

// NewApp creates a new application instance
func NewApp(cfg *config.Config, prefs *config.Prefs, log logrus.FieldLogger) *App {
	app := &App{
		tview:  tview.NewApplication(),
		pages:  tview.NewPages(),
		config: cfg,
		prefs:  prefs,
		log:    log,
	}

	applyStyles(components.ThemeByName(cfg.Theme))
	app.setupViews()
	return app
}

// applyStyles sets the tview defaults used by primitives created afterwards
func applyStyles(t components.Theme) {
	tview.Styles.PrimitiveBackgroundColor = tcell.GetColor(t.Background)
	tview.Styles.PrimaryTextColor = tcell.GetColor(t.Foreground)
	tview.Styles.SecondaryTextColor = tcell.GetColor(t.Muted)
	tview.Styles.BorderColor = tcell.GetColor(t.Muted)
	tview.Styles.TitleColor = tcell.GetColor(t.Foreground)
}

func (a *App) setupViews() {
	// Progress view
	a.progressView = views.NewProgressView()

	// Main view (will be populated after load)
	a.mainView = NewMainView(a.tview, a.config, a.prefs, a.log)

	// Add pages
	a.pages.AddPage("progress", a.progressView.Root(), true, true)
	a.pages.AddPage("main", a.mainView.Root(), true, false)

	a.pages.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if name, _ := a.pages.GetFrontPage(); name == "progress" && (event.Rune() == 'q' || event.Key() == tcell.KeyEsc) {
			a.tview.Stop()
			return nil
		}
		return event
	})

	a.tview.SetRoot(a.pages, true).EnableMouse(true)
}

func (a *App) load(ctx context.Context) {
	path := a.config.LocPath
	log := a.log.WithField("path", path)
	start := time.Now()

	parser := git.NewParser(path)
	estimate, err := parser.EstimateRows(ctx)
	if err != nil {
		a.fail(log, path, err)
		return
	}
	a.tview.QueueUpdateDraw(func() {
		a.progressView.SetTotal(estimate)
		a.progressView.SetStatus(fmt.Sprintf("Reading %s...", path))
	})

	f, err := os.Open(path)
	if err != nil {
		a.fail(log, path, fmt.Errorf("open edit log: %w", err))
		return
	}
	defer f.Close()

	aggregator := stats.NewAggregator(path, a.config.Timezone, a.config.CommitURL)
	err = parser.Parse(ctx, f,
		func(progress git.ScanProgress) {
			a.tview.QueueUpdateDraw(func() {
				a.progressView.SetProgress(progress.RowsParsed, estimate)
				if progress.CurrentFile != "" {
					a.progressView.SetStatus(fmt.Sprintf("Processing %s...", progress.CurrentFile))
				}
			})
		},
		aggregator.ProcessEvent,
	)
	if err != nil {
		a.fail(log, path, err)
		return
	}

	// Finalize statistics
	a.repo = aggregator.Finalize()
	log.WithFields(logrus.Fields{
		"events":   len(a.repo.Events),
		"commits":  len(a.repo.Commits),
		"duration": time.Since(start).Round(time.Millisecond),
	}).Info("edit log loaded")

	// Switch to main view
	a.tview.QueueUpdateDraw(func() {
		a.mainView.SetData(a.repo)
		a.pages.SwitchToPage("main")
		a.tview.SetFocus(a.mainView.GetFocusable())
	})
}

// fail leaves the app on the progress page with the error shown; no views
// render
func (a *App) fail(log logrus.FieldLogger, path string, err error) {
	log.WithError(err).Error("load edit log")
	a.tview.QueueUpdateDraw(func() {
		a.progressView.ShowError(path, err)
	})
}

// Run loads the edit log in the background and starts the application
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go a.load(ctx)
	return a.tview.Run()
}
