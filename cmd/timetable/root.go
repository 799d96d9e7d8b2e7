// Package main provides the CLI entrypoint for timetable.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/timetable/internal/bridge"
	"github.com/jmylchreest/timetable/internal/config"
	"github.com/jmylchreest/timetable/internal/schedule"
)

// Build-time variables (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// Global configuration and state
var (
	cfg        *config.Config
	globalOpts struct {
		verbose    bool
		configPath string
		themeFile  string
		dataFile   string
	}
	logger *slog.Logger

	// state holds the paths resolved at startup
	state config.State
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "timetable",
	Short: "Theme and schedule backend for the timetable UI",
	Long: `timetable serves a color theme and a CSV timetable to a front-end UI and
saves single-cell edits back to the CSV file.

Paths default to assets/styles/theme.conf and data/schedule.csv relative to
the working directory, or to its parent when started from src-tauri.

Running timetable without a subcommand starts the server.`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogger()

		var err error
		cfg, err = config.LoadConfig(globalOpts.configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if globalOpts.themeFile != "" {
			cfg.Paths.Theme = globalOpts.themeFile
		}
		if globalOpts.dataFile != "" {
			cfg.Paths.Data = globalOpts.dataFile
		}

		state = config.NewState(cfg)
		logger.Debug("resolved paths", "theme", state.ThemePath, "data", state.DataPath)
		return nil
	},
	// Default to serve when no subcommand is provided
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd, args)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&globalOpts.verbose, "verbose", "v", false,
		"Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&globalOpts.configPath, "config", "",
		"Path to config file (default: ~/.config/timetable/config.toml)")
	rootCmd.PersistentFlags().StringVar(&globalOpts.themeFile, "theme-file", "",
		"Path to theme file (overrides paths.theme)")
	rootCmd.PersistentFlags().StringVar(&globalOpts.dataFile, "data-file", "",
		"Path to schedule CSV file (overrides paths.data)")
}

// setupLogger configures the global slog logger.
func setupLogger() {
	level := slog.LevelWarn
	if globalOpts.verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	// Log to stderr so stdout is clean for output
	handler := slog.NewTextHandler(os.Stderr, opts)
	logger = slog.New(handler)
	slog.SetDefault(logger)
}

// newHandlers builds the request handlers for the resolved paths.
func newHandlers(strict bool) (*bridge.Handlers, error) {
	comma, err := cfg.Schedule.Comma()
	if err != nil {
		return nil, err
	}
	return bridge.New(state, logger,
		schedule.WithDelimiter(comma),
		schedule.WithStrictBounds(strict || cfg.Schedule.StrictBounds),
	), nil
}
