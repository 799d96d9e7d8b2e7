package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePaths(t *testing.T) {
	tests := []struct {
		name  string
		wd    string
		theme string
		data  string
	}{
		{
			name:  "project root",
			wd:    "/home/me/timetable",
			theme: "/home/me/timetable/assets/styles/theme.conf",
			data:  "/home/me/timetable/data/schedule.csv",
		},
		{
			name:  "sentinel directory",
			wd:    "/home/me/timetable/src-tauri",
			theme: "/home/me/timetable/src-tauri/../assets/styles/theme.conf",
			data:  "/home/me/timetable/src-tauri/../data/schedule.csv",
		},
		{
			name:  "sentinel as prefix only",
			wd:    "/home/me/src-tauri-old",
			theme: "/home/me/src-tauri-old/assets/styles/theme.conf",
			data:  "/home/me/src-tauri-old/data/schedule.csv",
		},
		{
			name:  "filesystem root",
			wd:    "/",
			theme: "/assets/styles/theme.conf",
			data:  "/data/schedule.csv",
		},
		{
			name:  "fallback dot",
			wd:    ".",
			theme: "./assets/styles/theme.conf",
			data:  "./data/schedule.csv",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := ResolvePaths(tt.wd)
			assert.Equal(t, tt.theme, state.ThemePath)
			assert.Equal(t, tt.data, state.DataPath)
		})
	}
}

func TestResolvePaths_SentinelPointsAtParent(t *testing.T) {
	root := t.TempDir()
	wd := filepath.Join(root, SentinelDir)
	require.NoError(t, os.MkdirAll(wd, 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "data"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "data", "schedule.csv"), []byte(",A\n"), 0644))

	state := ResolvePaths(wd)

	_, err := os.Stat(state.DataPath)
	assert.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "data", "schedule.csv"), filepath.Clean(state.DataPath))
}

func TestNewStateFrom_Overrides(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Paths.Data = "/srv/schedule.csv"

	state := NewStateFrom("/work", cfg)
	assert.Equal(t, "/work/assets/styles/theme.conf", state.ThemePath)
	assert.Equal(t, "/srv/schedule.csv", state.DataPath)

	cfg.Paths.Theme = "/srv/theme.conf"
	state = NewStateFrom("/work", cfg)
	assert.Equal(t, "/srv/theme.conf", state.ThemePath)
}

func TestNewStateFrom_NilConfig(t *testing.T) {
	assert.Equal(t, ResolvePaths("/work"), NewStateFrom("/work", nil))
}

func TestNewStateFrom_ExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg := DefaultConfig()
	cfg.Paths.Theme = "~/themes/theme.conf"

	state := NewStateFrom("/work", cfg)
	assert.Equal(t, filepath.Join(home, "themes", "theme.conf"), state.ThemePath)
}

func TestNewState_UsesWorkingDirectory(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)

	assert.Equal(t, ResolvePaths(wd), NewState(nil))
}
