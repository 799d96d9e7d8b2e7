package theme

import (
	"embed"
	"io/fs"
	"path/filepath"
	"strings"
)

// EmbeddedThemes contains all bundled theme files.
//
//go:embed themes/*.conf
var EmbeddedThemes embed.FS

// DefaultThemeName is the bundled preset matching Default().
const DefaultThemeName = "rose-pine"

// BundledThemes lists all embedded theme names.
var BundledThemes = []string{"rose-pine", "rose-pine-dawn"}

// GetEmbeddedTheme retrieves a bundled theme file by name.
// Returns the raw file content and whether it was found.
func GetEmbeddedTheme(name string) (string, bool) {
	data, err := EmbeddedThemes.ReadFile("themes/" + name + ".conf")
	if err != nil {
		return "", false
	}
	return string(data), true
}

// ListEmbeddedThemes returns names of all embedded themes.
func ListEmbeddedThemes() []string {
	var themes []string

	entries, err := fs.ReadDir(EmbeddedThemes, "themes")
	if err != nil {
		return BundledThemes
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if ext := filepath.Ext(name); ext == ".conf" {
			themes = append(themes, strings.TrimSuffix(name, ext))
		}
	}

	return themes
}

// IsEmbeddedTheme checks if a theme name is bundled.
func IsEmbeddedTheme(name string) bool {
	_, found := GetEmbeddedTheme(name)
	return found
}
