package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/audi70r/gitstory/internal/git"
)

var (
	generateOut     string
	generateInclude []string
	generateExclude []string
)

var generateCmd = &cobra.Command{
	Use:   "generate [repo]",
	Short: "Build an edit log from a git repository",
	Long: `Blame every matching file at HEAD of a git repository and write one edit log
row per line. Patterns use doublestar syntax, e.g. "src/**/*.ts".`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

func init() {
	defaults := git.DefaultGenerateOptions()
	generateCmd.Flags().StringVarP(&generateOut, "out", "o", "loc.csv", "output edit log")
	generateCmd.Flags().StringSliceVar(&generateInclude, "include", defaults.Include, "files to blame")
	generateCmd.Flags().StringSliceVar(&generateExclude, "exclude", defaults.Exclude, "files to skip")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	repoPath := "."
	if len(args) > 0 {
		repoPath = args[0]
	}
	if !git.IsGitRepo(repoPath) {
		return fmt.Errorf("%w: %s", git.ErrNotRepository, repoPath)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	f, err := os.Create(generateOut)
	if err != nil {
		return fmt.Errorf("create %s: %w", generateOut, err)
	}
	defer f.Close()

	opts := git.GenerateOptions{Include: generateInclude, Exclude: generateExclude}
	rows, err := git.Generate(ctx, repoPath, opts, f, func(p git.ScanProgress) {
		if p.CurrentFile != "" {
			logger.WithField("rows", p.RowsParsed).Debugf("blamed %s", p.CurrentFile)
		}
	})
	if err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Generation failed after %s rows\n", humanize.Comma(int64(rows)))
		return err
	}

	color.New(color.FgGreen).Fprintf(os.Stdout, "Wrote %s rows to %s\n", humanize.Comma(int64(rows)), generateOut)
	return nil
}
