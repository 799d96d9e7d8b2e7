package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/timetable/internal/adapter/output"
	"github.com/jmylchreest/timetable/internal/theme"
)

var themeOpts struct {
	format  string
	builtin string
	list    bool
}

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Print the loaded theme",
	Long: `Print the theme read from the theme file, with defaults applied for
anything missing.

Examples:
  # Theme as JSON, as served to the UI
  timetable theme

  # Show a bundled theme as a color table
  timetable theme --builtin rose-pine-dawn --format table

  # List bundled themes
  timetable theme --list`,
	RunE: runTheme,
}

func init() {
	rootCmd.AddCommand(themeCmd)

	themeCmd.Flags().StringVarP(&themeOpts.format, "format", "f", "json",
		"Output format (json, yaml, plain, table)")
	themeCmd.Flags().StringVar(&themeOpts.builtin, "builtin", "",
		"Show a bundled theme instead of the theme file")
	themeCmd.Flags().BoolVar(&themeOpts.list, "list", false,
		"List bundled themes")
}

func runTheme(cmd *cobra.Command, args []string) error {
	if themeOpts.list {
		for _, name := range theme.ListEmbeddedThemes() {
			fmt.Println(name)
		}
		return nil
	}

	format, err := output.ParseFormat(themeOpts.format)
	if err != nil {
		return err
	}

	var t theme.Theme
	if themeOpts.builtin != "" {
		if !theme.IsEmbeddedTheme(themeOpts.builtin) {
			return unknownThemeError(themeOpts.builtin)
		}
		content, _ := theme.GetEmbeddedTheme(themeOpts.builtin)
		t = theme.Parse(content)
	} else {
		handlers, err := newHandlers(false)
		if err != nil {
			return err
		}
		t = handlers.GetTheme()
	}

	opts := output.DefaultFormatterOptions()
	opts.Style = t
	return output.NewFormatter(format, opts).FormatTheme(os.Stdout, t)
}

func unknownThemeError(name string) error {
	return fmt.Errorf("unknown bundled theme %q (available: %s)",
		name, strings.Join(theme.ListEmbeddedThemes(), ", "))
}
