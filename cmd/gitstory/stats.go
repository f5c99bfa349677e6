package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/audi70r/gitstory/internal/stats"
)

var (
	statsTop     int
	statsNoColor bool
)

var statsCmd = &cobra.Command{
	Use:   "stats [loc.csv]",
	Short: "Print the edit log summary",
	Long:  `Print the code summary, lines by time of day and the largest files of an edit log.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().IntVar(&statsTop, "top", 10, "number of files to list")
	statsCmd.Flags().BoolVar(&statsNoColor, "no-color", false, "disable colored output")
}

func runStats(cmd *cobra.Command, args []string) error {
	if statsNoColor {
		color.NoColor = true //nolint:reassign // library global
	}

	repo, err := loadRepository(cmd.Context(), locPath(args))
	if err != nil {
		return err
	}

	s := stats.Summarize(repo.Events, repo.Commits, cfg.Timezone)
	if !s.HasData {
		color.New(color.FgYellow).Fprintf(os.Stdout, "%s has no edit events\n", repo.Path)
		return nil
	}

	color.New(color.FgCyan, color.Bold).Fprintf(os.Stdout, "Code Summary: %s\n", repo.Path)
	fmt.Println(summaryTable(s))

	color.New(color.FgCyan, color.Bold).Fprintln(os.Stdout, "\nLines by Time of Day")
	fmt.Println(periodTable(stats.PeriodBreakdown(repo.Events, cfg.Timezone), s.TopPeriod))

	color.New(color.FgCyan, color.Bold).Fprintln(os.Stdout, "\nLargest Files")
	fmt.Println(filesTable(stats.FileGroups(repo.Events), statsTop))

	color.New(color.FgCyan, color.Bold).Fprintln(os.Stdout, "\nLargest Commits")
	fmt.Println(commitsTable(repo, statsTop))
	return nil
}

func newTable() table.Writer {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateRows = false
	return tbl
}

func summaryTable(s stats.Summary) string {
	tbl := newTable()
	tbl.AppendRows([]table.Row{
		{"Lines of code", humanize.Comma(int64(s.TotalLOC))},
		{"Commits", humanize.Comma(int64(s.TotalCommits))},
		{"Files", humanize.Comma(int64(s.Files))},
		{"Longest file", fmt.Sprintf("%s (%s lines)", s.LongestFile, humanize.Comma(int64(s.MaxFileLen)))},
		{"Average length", humanize.FormatFloat("#,###.#", s.AvgFileLen) + " lines"},
		{"Most active", string(s.TopPeriod)},
	})
	tbl.SetColumnConfigs([]table.ColumnConfig{{Number: 2, Align: text.AlignRight}})
	return tbl.Render()
}

func periodTable(periods []stats.PeriodCount, top stats.Period) string {
	total := 0
	for _, p := range periods {
		total += p.Lines
	}

	tbl := newTable()
	tbl.AppendHeader(table.Row{"Period", "Lines", "Share", ""})
	for _, p := range periods {
		share := 0.0
		if total > 0 {
			share = float64(p.Lines) / float64(total)
		}
		name := string(p.Period)
		if p.Period == top {
			name += " *"
		}
		tbl.AppendRow(table.Row{
			name,
			humanize.Comma(int64(p.Lines)),
			fmt.Sprintf("%.1f%%", share*100),
			strings.Repeat("█", int(share*20+0.5)),
		})
	}
	tbl.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
	})
	return tbl.Render()
}

func filesTable(groups []stats.FileGroup, limit int) string {
	total := len(groups)
	if limit > 0 && len(groups) > limit {
		groups = groups[:limit]
	}

	tbl := newTable()
	tbl.AppendHeader(table.Row{"#", "File", "Lines", "Types"})
	for i, g := range groups {
		order, counts := g.TypeCounts()
		types := make([]string, len(order))
		for j, t := range order {
			types[j] = fmt.Sprintf("%s %d", t, counts[t])
		}
		tbl.AppendRow(table.Row{i + 1, g.Name, humanize.Comma(int64(len(g.Lines))), strings.Join(types, ", ")})
	}
	tbl.AppendFooter(table.Row{"", fmt.Sprintf("Total: %d files", total)})
	tbl.SetColumnConfigs([]table.ColumnConfig{{Number: 3, Align: text.AlignRight}})
	return tbl.Render()
}

func commitsTable(repo *stats.Repository, limit int) string {
	tbl := newTable()
	tbl.AppendHeader(table.Row{"Commit", "Date", "Author", "Lines", "Files"})
	for _, c := range repo.TopCommits(limit) {
		id := c.ID
		if len(id) > 8 {
			id = id[:8]
		}
		tbl.AppendRow(table.Row{
			id,
			c.Datetime.In(cfg.Timezone).Format("2006-01-02 " + cfg.TimeLayout()),
			c.Author,
			humanize.Comma(int64(c.TotalLines)),
			repo.Lines.FileCount(c.ID),
		})
	}
	tbl.SetColumnConfigs([]table.ColumnConfig{
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
	})
	return tbl.Render()
}
