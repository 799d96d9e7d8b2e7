package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/timetable/internal/config"
)

var statusOpts struct {
	json bool
}

// FileStatus describes one resolved file.
type FileStatus struct {
	Path     string `json:"path"`
	Exists   bool   `json:"exists"`
	Size     string `json:"size,omitempty"`
	Modified string `json:"modified,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Status is the output of the status command.
type Status struct {
	Config FileStatus `json:"config"`
	Theme  FileStatus `json:"theme"`
	Data   FileStatus `json:"data"`
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show resolved paths and file state",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().BoolVar(&statusOpts.json, "json", false,
		"Output as JSON")
}

func runStatus(cmd *cobra.Command, args []string) error {
	configPath := globalOpts.configPath
	if configPath == "" {
		configPath = config.ConfigPath()
	}

	status := Status{
		Config: statFile(configPath),
		Theme:  statFile(state.ThemePath),
		Data:   statFile(state.DataPath),
	}

	if statusOpts.json {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(status)
	}

	printFileStatus("config", status.Config)
	printFileStatus("theme", status.Theme)
	printFileStatus("data", status.Data)
	return nil
}

func statFile(path string) FileStatus {
	fs := FileStatus{Path: path}
	info, err := os.Stat(path)
	if err != nil {
		if !os.IsNotExist(err) {
			fs.Error = err.Error()
		}
		return fs
	}
	fs.Exists = true
	fs.Size = humanize.Bytes(uint64(info.Size()))
	fs.Modified = humanize.Time(info.ModTime())
	return fs
}

func printFileStatus(label string, fs FileStatus) {
	switch {
	case fs.Error != "":
		fmt.Printf("%-7s %s (error: %s)\n", label+":", fs.Path, fs.Error)
	case !fs.Exists:
		fmt.Printf("%-7s %s (missing)\n", label+":", fs.Path)
	default:
		fmt.Printf("%-7s %s (%s, modified %s)\n", label+":", fs.Path, fs.Size, fs.Modified)
	}
}
