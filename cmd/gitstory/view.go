package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/audi70r/gitstory/internal/ui"
)

var viewCmd = &cobra.Command{
	Use:   "view [loc.csv]",
	Short: "Open the edit log in the terminal UI",
	Long: `Open the edit log in the terminal UI. This is also what gitstory does when
run without a subcommand.

Keys: Tab cycles panels, [ and ] move the time slider, t toggles the color
scheme, Esc clears a brush selection, q quits.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runView,
}

func runView(cmd *cobra.Command, args []string) error {
	cfg.LocPath = locPath(args)

	closer, err := openLog()
	if err != nil {
		return err
	}
	defer closer.Close()

	logger.WithField("path", cfg.LocPath).Info("starting terminal UI")

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return ui.NewApp(cfg, prefs, logger).Run(ctx)
}
