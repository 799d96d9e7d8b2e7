package theme

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Default values applied before a theme file is parsed.
const (
	DefaultBackground          = "#191724"
	DefaultForeground          = "#e0def4"
	DefaultFontFamily          = "Monospace"
	DefaultFontSize            = 14.0
	DefaultSelectionBackground = "#403d52"

	// MaxPaletteSize is the number of colorN keys that are looked up (color0..color15).
	MaxPaletteSize = 16

	// MinPaletteSize is the fewest parsed colors accepted before the
	// fallback palette replaces them.
	MinPaletteSize = 10
)

// fallbackPalette is used whenever fewer than MinPaletteSize colors are parsed.
var fallbackPalette = []string{
	"#9ccfd8", "#c4a7e7", "#ebbcba",
	"#f6c177", "#ea9d34", "#d7827e",
	"#907aa9", "#b4637a", "#88a096",
	"#9bb1d6", "#c2d1b2", "#e8d1c5",
	"#d4b5d8", "#adcbe3", "#e1e1e1",
}

// Theme is the color and font bundle served to the UI.
type Theme struct {
	Background          string   `json:"background" yaml:"background"`
	Foreground          string   `json:"foreground" yaml:"foreground"`
	Palette             []string `json:"palette" yaml:"palette"`
	FontFamily          string   `json:"font_family" yaml:"font_family"`
	FontSize            float64  `json:"font_size" yaml:"font_size"`
	SelectionBackground string   `json:"selection_background" yaml:"selection_background"`
}

// FallbackPalette returns a copy of the built-in 15 color palette.
func FallbackPalette() []string {
	palette := make([]string, len(fallbackPalette))
	copy(palette, fallbackPalette)
	return palette
}

// Default returns the theme produced by an empty or missing theme file.
func Default() Theme {
	return Theme{
		Background:          DefaultBackground,
		Foreground:          DefaultForeground,
		Palette:             FallbackPalette(),
		FontFamily:          DefaultFontFamily,
		FontSize:            DefaultFontSize,
		SelectionBackground: DefaultSelectionBackground,
	}
}

// Parse builds a Theme from theme file content.
// It never fails: unknown keys and short lines are ignored, and anything
// missing keeps its default.
func Parse(content string) Theme {
	t := Default()
	t.Palette = nil
	colors := make(map[string]string)

	for _, line := range strings.Split(content, "\n") {
		parts := strings.Fields(line)
		if len(parts) < 2 {
			continue
		}

		key, val := parts[0], parts[1]
		switch {
		case key == "background":
			t.Background = val
		case key == "foreground":
			t.Foreground = val
		case key == "selection_background":
			t.SelectionBackground = val
		case key == "font_family":
			t.FontFamily = strings.Join(parts[1:], " ")
		case key == "font_size":
			size, err := strconv.ParseFloat(val, 64)
			if err != nil || math.IsNaN(size) || math.IsInf(size, 0) {
				size = DefaultFontSize
			}
			t.FontSize = size
		case strings.HasPrefix(key, "color"):
			colors[key] = val
		}
	}

	for i := 0; i < MaxPaletteSize; i++ {
		if c, ok := colors[fmt.Sprintf("color%d", i)]; ok {
			t.Palette = append(t.Palette, c)
		}
	}

	if len(t.Palette) < MinPaletteSize {
		t.Palette = FallbackPalette()
	}

	return t
}

// Format renders a theme in the format understood by Parse.
func Format(t Theme) string {
	var b strings.Builder

	fmt.Fprintf(&b, "background %s\n", t.Background)
	fmt.Fprintf(&b, "foreground %s\n", t.Foreground)
	fmt.Fprintf(&b, "selection_background %s\n", t.SelectionBackground)
	fmt.Fprintf(&b, "font_family %s\n", t.FontFamily)
	fmt.Fprintf(&b, "font_size %s\n", strconv.FormatFloat(t.FontSize, 'f', -1, 64))

	for i, c := range t.Palette {
		if i >= MaxPaletteSize {
			break
		}
		fmt.Fprintf(&b, "color%d %s\n", i, c)
	}

	return b.String()
}

// Color returns palette entry i, wrapping around the palette length.
// It returns the foreground color for an empty palette.
func (t Theme) Color(i int) string {
	if len(t.Palette) == 0 {
		return t.Foreground
	}
	n := len(t.Palette)
	return t.Palette[((i%n)+n)%n]
}
