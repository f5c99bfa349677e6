package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/audi70r/gitstory/internal/config"
	"github.com/audi70r/gitstory/internal/git"
	"github.com/audi70r/gitstory/internal/stats"
)

var (
	// Version information (set by build flags)
	Version   = "dev"
	BuildTime = "unknown"

	cfgFile string
	verbose bool
	logFile string
	logger  *logrus.Logger
	cfg     *config.Config
	prefs   *config.Prefs
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gitstory",
	Short: "gitstory - explore when and where a codebase was written",
	Long: `gitstory loads a line-level edit log and shows its commits by time of day,
with a time slider, a selectable scatter plot and a per-file breakdown.`,
	Version: Version,
	Args:    cobra.MaximumNArgs(1),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Initialize logger
		logger = logrus.New()
		logger.SetOutput(os.Stderr)

		// Load configuration
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			logger.WithError(err).Warn("Failed to load config, using defaults")
			cfg = config.Default()
		}

		level, err := logrus.ParseLevel(cfg.Logging.Level)
		if err != nil {
			level = logrus.InfoLevel
		}
		if verbose {
			level = logrus.DebugLevel
		}
		logger.SetLevel(level)

		if logFile == "" {
			logFile = cfg.Logging.File
		}

		prefs, err = config.LoadPrefs(config.DefaultPrefsPath())
		if err != nil {
			logger.WithError(err).Warn("Failed to load preferences")
		}
		prefs.Apply(cfg)
	},
	RunE: runView,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./gitstory.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to this file while the terminal UI runs")

	rootCmd.SetVersionTemplate(`gitstory {{.Version}}
Build time: ` + BuildTime + `
`)

	// Add subcommands
	rootCmd.AddCommand(viewCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(generateCmd)
}

// locPath returns the edit log named on the command line, or the configured one
func locPath(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return cfg.LocPath
}

// loadRepository reads the edit log and aggregates it into commits
func loadRepository(ctx context.Context, path string) (*stats.Repository, error) {
	events, err := git.NewParser(path).Load(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	repo := stats.Build(path, events, cfg.Timezone, cfg.CommitURL)
	logger.WithFields(logrus.Fields{
		"path":    path,
		"events":  len(repo.Events),
		"commits": len(repo.Commits),
	}).Debug("edit log loaded")
	return repo, nil
}

// openLog points the logger at the log file, or discards output. The caller
// closes the returned closer.
func openLog() (io.Closer, error) {
	if logFile == "" {
		logger.SetOutput(io.Discard)
		return io.NopCloser(nil), nil
	}

	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	logger.SetOutput(f)
	return f, nil
}
