package theme

import (
	"log/slog"
	"os"
)

// Load reads and parses the theme file at path.
// An unreadable or missing file is treated as empty content.
func Load(path string) Theme {
	data, err := os.ReadFile(path)
	if err != nil {
		slog.Debug("theme file unreadable, using defaults", "path", path, "error", err)
		data = nil
	}
	return Parse(string(data))
}
