package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/timetable/internal/schedule"
	"github.com/jmylchreest/timetable/internal/theme"
)

var initOpts struct {
	force bool
	theme string
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default theme file and sample schedule",
	Long: `Write a default theme file and a sample schedule at the resolved paths.

Existing files are kept unless --force is given.`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().BoolVar(&initOpts.force, "force", false,
		"Overwrite existing files")
	initCmd.Flags().StringVar(&initOpts.theme, "theme", "",
		"Bundled theme to write (default: the built-in defaults)")
}

func runInit(cmd *cobra.Command, args []string) error {
	content := theme.Format(theme.Default())
	if initOpts.theme != "" {
		if !theme.IsEmbeddedTheme(initOpts.theme) {
			return unknownThemeError(initOpts.theme)
		}
		content, _ = theme.GetEmbeddedTheme(initOpts.theme)
	}

	if err := scaffold(state.ThemePath, []byte(content), initOpts.force); err != nil {
		return err
	}
	return scaffold(state.DataPath, schedule.Sample(), initOpts.force)
}

// scaffold writes data to path, creating parent directories. An existing
// file is left alone unless force is set.
func scaffold(path string, data []byte, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			fmt.Printf("exists, skipped: %s\n", path)
			return nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return err
	}

	fmt.Printf("wrote %s\n", path)
	return nil
}
