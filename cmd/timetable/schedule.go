package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/timetable/internal/adapter/output"
)

var scheduleOpts struct {
	format  string
	noColor bool
}

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Print the schedule",
	Long: `Print the schedule read from the CSV file.

The table format is colored with the loaded theme.

Examples:
  timetable schedule
  timetable schedule --format json
  timetable schedule --data-file ~/week.csv --format csv`,
	RunE: runSchedule,
}

func init() {
	rootCmd.AddCommand(scheduleCmd)

	scheduleCmd.Flags().StringVarP(&scheduleOpts.format, "format", "f", "table",
		"Output format (table, json, yaml, csv, plain)")
	scheduleCmd.Flags().BoolVar(&scheduleOpts.noColor, "no-color", false,
		"Disable colors in table output")
}

func runSchedule(cmd *cobra.Command, args []string) error {
	format, err := output.ParseFormat(scheduleOpts.format)
	if err != nil {
		return err
	}

	handlers, err := newHandlers(false)
	if err != nil {
		return err
	}

	data, err := handlers.GetSchedule()
	if err != nil {
		return err
	}

	comma, _ := cfg.Schedule.Comma()
	opts := output.DefaultFormatterOptions()
	opts.Delimiter = comma
	opts.NoColor = scheduleOpts.noColor
	if format == output.FormatTable {
		opts.Style = handlers.GetTheme()
	}

	return output.NewFormatter(format, opts).FormatSchedule(os.Stdout, data)
}
