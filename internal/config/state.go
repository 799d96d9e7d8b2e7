package config

import (
	"os"
	"path/filepath"
	"strings"
)

// Startup path layout.
const (
	// SentinelDir is the working directory name that resolves paths one level up.
	SentinelDir = "src-tauri"

	ThemeRelPath = "assets/styles/theme.conf"
	DataRelPath  = "data/schedule.csv"
)

// State holds the file paths the request handlers operate on.
// It is built once at startup and read-only afterwards.
type State struct {
	ThemePath string
	DataPath  string
}

// ResolvePaths derives the theme and data paths from a working directory.
// When the final segment of wd is SentinelDir the paths are taken relative to
// its parent. The paths are joined without cleaning so they match the layout
// existing deployments expect.
func ResolvePaths(wd string) State {
	prefix := ""
	if filepath.Base(wd) == SentinelDir {
		prefix = ".." + string(filepath.Separator)
	}
	return State{
		ThemePath: joinRaw(wd, prefix+filepath.FromSlash(ThemeRelPath)),
		DataPath:  joinRaw(wd, prefix+filepath.FromSlash(DataRelPath)),
	}
}

// joinRaw appends rel to base with a single separator and no cleaning.
func joinRaw(base, rel string) string {
	if base == "" {
		return rel
	}
	if strings.HasSuffix(base, string(filepath.Separator)) {
		return base + rel
	}
	return base + string(filepath.Separator) + rel
}

// NewState resolves paths from the current working directory, falling back
// to "." when it cannot be determined, then applies any overrides from cfg.
func NewState(cfg *Config) State {
	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}
	return NewStateFrom(wd, cfg)
}

// NewStateFrom is NewState with an explicit working directory.
func NewStateFrom(wd string, cfg *Config) State {
	state := ResolvePaths(wd)
	if cfg == nil {
		return state
	}
	if cfg.Paths.Theme != "" {
		state.ThemePath = expandHome(cfg.Paths.Theme)
	}
	if cfg.Paths.Data != "" {
		state.DataPath = expandHome(cfg.Paths.Data)
	}
	return state
}

// expandHome replaces a leading "~/" with the user's home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
