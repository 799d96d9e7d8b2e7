package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var setOpts struct {
	strict bool
}

var setCmd = &cobra.Command{
	Use:   "set ROW COL VALUE",
	Short: "Save one schedule cell",
	Long: `Save VALUE into the grid cell at ROW and COL (0-based, excluding the
header row and time slot column). The file is rewritten in full.

Out of range cells are ignored unless --strict is given.

Examples:
  # Replace Tuesday's first slot
  timetable set 0 1 Biology`,
	Args: cobra.ExactArgs(3),
	RunE: runSet,
}

func init() {
	rootCmd.AddCommand(setCmd)

	setCmd.Flags().BoolVar(&setOpts.strict, "strict", false,
		"Fail when the cell does not exist")
}

// parseCell parses the ROW and COL arguments.
func parseCell(rowArg, colArg string) (int, int, error) {
	row, err := strconv.Atoi(rowArg)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid row %q: %w", rowArg, err)
	}
	col, err := strconv.Atoi(colArg)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid col %q: %w", colArg, err)
	}
	return row, col, nil
}

func runSet(cmd *cobra.Command, args []string) error {
	row, col, err := parseCell(args[0], args[1])
	if err != nil {
		return err
	}

	handlers, err := newHandlers(setOpts.strict)
	if err != nil {
		return err
	}

	if err := handlers.SaveCell(row, col, args[2]); err != nil {
		return err
	}

	// A non-strict save outside the table is a no-op.
	if data, err := handlers.GetSchedule(); err == nil {
		if _, ok := data.Cell(row, col); !ok {
			logger.Warn("cell out of range, nothing saved", "row", row, "col", col)
		}
	}
	return nil
}
