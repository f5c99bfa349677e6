// Package export renders the commit history as a standalone HTML page.
package export

import (
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/audi70r/gitstory/internal/config"
	"github.com/audi70r/gitstory/internal/scale"
	"github.com/audi70r/gitstory/internal/stats"
)

const (
	pageTitle   = "gitstory"
	chartWidth  = "1000px"
	chartHeight = "600px"
	barHeight   = "500px"
	xAxisRotate = 45
)

// Render writes the commit scatter and the per-file breakdown to w
func Render(repo *stats.Repository, cfg *config.Config, w io.Writer) error {
	page := components.NewPage()
	page.PageTitle = pageTitle
	page.AddCharts(
		commitScatter(repo.Commits, cfg),
		fileBar(stats.FileGroups(repo.Events), cfg.MaxFiles),
	)

	if err := page.Render(w); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	return nil
}

// commitScatter plots commits by time and hour of day, sized like the
// initial terminal render
func commitScatter(commits []*stats.Commit, cfg *config.Config) *charts.Scatter {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: chartWidth, Height: chartHeight}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Commits by Time of Day",
			Subtitle: fmt.Sprintf("%d commits, radius by lines edited", len(commits)),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "item"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Date", Type: "time"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Hour", Type: "value", Min: 0, Max: 24}),
	)

	lo, hi, _ := scale.Extent(commits, func(c *stats.Commit) float64 {
		return float64(c.TotalLines)
	})
	radius := scale.NewSqrt(lo, hi, cfg.Scatter.InitialRadius[0], cfg.Scatter.InitialRadius[1])

	sorted := make([]*stats.Commit, len(commits))
	copy(sorted, commits)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].TotalLines != sorted[j].TotalLines {
			return sorted[i].TotalLines > sorted[j].TotalLines
		}
		return sorted[i].ID < sorted[j].ID
	})

	data := make([]opts.ScatterData, len(sorted))
	for i, c := range sorted {
		data[i] = opts.ScatterData{
			Name:       c.ID,
			Value:      []any{c.Datetime.UnixMilli(), math.Round(c.HourFrac*100) / 100, c.TotalLines},
			SymbolSize: int(math.Round(2 * radius.Map(float64(c.TotalLines)))),
		}
	}

	scatter.AddSeries("Commits", data,
		charts.WithItemStyleOpts(opts.ItemStyle{Color: "steelblue", Opacity: opts.Float(0.7)}),
	)
	return scatter
}

// fileBar stacks each file's lines by type
func fileBar(groups []stats.FileGroup, limit int) *charts.Bar {
	if limit > 0 && len(groups) > limit {
		groups = groups[:limit]
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: chartWidth, Height: barHeight}),
		charts.WithTitleOpts(opts.Title{Title: "Lines by File", Subtitle: "Stacked by line type"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Right: "0"}),
		charts.WithXAxisOpts(opts.XAxis{AxisLabel: &opts.AxisLabel{Rotate: xAxisRotate}}),
	)

	names := make([]string, len(groups))
	colors := scale.NewOrdinal(scale.Tableau10)
	counts := make([]map[string]int, len(groups))
	for i, g := range groups {
		names[i] = g.Name
		order, c := g.TypeCounts()
		counts[i] = c
		for _, t := range order {
			colors.Map(t)
		}
	}
	bar.SetXAxis(names)

	for _, t := range colors.Domain() {
		data := make([]opts.BarData, len(groups))
		for i := range groups {
			data[i] = opts.BarData{Value: counts[i][t]}
		}
		name := t
		if name == "" {
			name = "other"
		}
		bar.AddSeries(name, data,
			charts.WithBarChartOpts(opts.BarChart{Stack: "lines"}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: colors.Map(t)}),
		)
	}
	return bar
}
