package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/timetable/internal/schedule"
)

const exampleCSV = ",Mon,Tue\n9am,Math,Sci\n10am,Art,PE\n"

// runCLI executes the root command with isolated config and file paths.
func runCLI(t *testing.T, dataPath string, args ...string) error {
	t.Helper()
	dir := t.TempDir()

	globalOpts.verbose = false
	globalOpts.themeFile = ""
	globalOpts.dataFile = ""
	setOpts.strict = false

	base := []string{
		"--config", filepath.Join(dir, "config.toml"),
		"--theme-file", filepath.Join(dir, "theme.conf"),
		"--data-file", dataPath,
	}
	rootCmd.SetArgs(append(base, args...))
	return rootCmd.Execute()
}

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "schedule.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestParseCell(t *testing.T) {
	tests := []struct {
		name    string
		row     string
		col     string
		wantRow int
		wantCol int
		wantErr string
	}{
		{name: "valid", row: "0", col: "1", wantRow: 0, wantCol: 1},
		{name: "negative passes through", row: "-1", col: "2", wantRow: -1, wantCol: 2},
		{name: "bad row", row: "x", col: "1", wantErr: `invalid row "x"`},
		{name: "bad col", row: "1", col: "1.5", wantErr: `invalid col "1.5"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row, col, err := parseCell(tt.row, tt.col)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantRow, row)
			assert.Equal(t, tt.wantCol, col)
		})
	}
}

func TestSetCommand(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
		want    string
	}{
		{
			name: "saves cell",
			args: []string{"set", "0", "1", "Bio"},
			want: ",Mon,Tue\n9am,Math,Bio\n10am,Art,PE\n",
		},
		{
			name: "out of range is skipped",
			args: []string{"set", "5", "0", "X"},
			want: exampleCSV,
		},
		{
			name:    "strict out of range fails",
			args:    []string{"set", "--strict", "5", "0", "X"},
			wantErr: "out of range",
			want:    exampleCSV,
		},
		{
			name:    "bad row argument",
			args:    []string{"set", "one", "0", "X"},
			wantErr: "invalid row",
			want:    exampleCSV,
		},
		{
			name:    "wrong argument count",
			args:    []string{"set", "0", "1"},
			wantErr: "accepts 3 arg(s)",
			want:    exampleCSV,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeCSV(t, exampleCSV)

			err := runCLI(t, path, tt.args...)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			} else {
				require.NoError(t, err)
			}

			content, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(content))
		})
	}
}

func TestPersistentPreRun_FlagOverrides(t *testing.T) {
	path := writeCSV(t, exampleCSV)

	require.NoError(t, runCLI(t, path, "set", "1", "0", "Gym"))

	assert.Equal(t, path, state.DataPath)
	assert.Equal(t, path, cfg.Paths.Data)
	assert.Equal(t, "theme.conf", filepath.Base(state.ThemePath))

	data, err := schedule.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Gym", data.Grid[1][0])
}

func TestPersistentPreRun_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	dataPath := filepath.Join(dir, "week.csv")
	require.NoError(t, os.WriteFile(dataPath, []byte(";Mon;Tue\n9am;Math;Sci\n"), 0644))

	configPath := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(configPath, []byte(
		"[paths]\ndata = \""+filepath.ToSlash(dataPath)+"\"\n\n[schedule]\ndelimiter = \";\"\n"), 0644))

	globalOpts.themeFile = ""
	globalOpts.dataFile = ""
	setOpts.strict = false
	rootCmd.SetArgs([]string{"--config", configPath, "--data-file", "", "--theme-file", "", "set", "0", "0", "a;b"})
	require.NoError(t, rootCmd.Execute())

	assert.Equal(t, dataPath, state.DataPath)

	content, err := os.ReadFile(dataPath)
	require.NoError(t, err)
	assert.Equal(t, ";Mon;Tue\n9am;\"a;b\";Sci\n", string(content))
}

func TestPersistentPreRun_InvalidConfig(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(configPath, []byte("[schedule]\ndelimiter = \"ab\"\n"), 0644))

	rootCmd.SetArgs([]string{"--config", configPath, "set", "0", "0", "x"})
	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}
