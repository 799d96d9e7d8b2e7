package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/timetable/internal/config"
)

var configOpts struct {
	force  bool
	stdout bool
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write the default configuration file",
	RunE:  runConfigGenerate,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(configFilePath())
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configGenerateCmd, configPathCmd)

	configGenerateCmd.Flags().BoolVar(&configOpts.force, "force", false,
		"Overwrite an existing config file")
	configGenerateCmd.Flags().BoolVar(&configOpts.stdout, "stdout", false,
		"Print the config instead of writing it")
}

func configFilePath() string {
	if globalOpts.configPath != "" {
		return globalOpts.configPath
	}
	return config.ConfigPath()
}

func runConfigGenerate(cmd *cobra.Command, args []string) error {
	defaults := config.DefaultConfig()

	if configOpts.stdout {
		data, err := toml.Marshal(defaults)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	}

	path := configFilePath()
	if !configOpts.force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		} else if !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}

	if err := defaults.Save(path); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}
