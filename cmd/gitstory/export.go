package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/audi70r/gitstory/internal/export"
)

var (
	exportOut string
	exportTop int
)

var exportCmd = &cobra.Command{
	Use:   "export [loc.csv]",
	Short: "Write the commit scatter and file breakdown as an HTML page",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "gitstory.html", "output HTML file")
	exportCmd.Flags().IntVar(&exportTop, "top", 50, "files in the breakdown chart when max_files is unset")
}

func runExport(cmd *cobra.Command, args []string) error {
	repo, err := loadRepository(cmd.Context(), locPath(args))
	if err != nil {
		return err
	}

	f, err := os.Create(exportOut)
	if err != nil {
		return fmt.Errorf("create %s: %w", exportOut, err)
	}
	defer f.Close()

	if cfg.MaxFiles == 0 {
		cfg.MaxFiles = exportTop
	}
	if err := export.Render(repo, cfg, f); err != nil {
		return err
	}

	logger.WithField("out", exportOut).Debug("report written")
	color.New(color.FgGreen).Fprintf(os.Stdout, "Wrote %d commits to %s\n", len(repo.Commits), exportOut)
	return nil
}
