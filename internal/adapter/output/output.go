// Package output provides output formatters for themes and timetables.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/jmylchreest/timetable/internal/schedule"
	"github.com/jmylchreest/timetable/internal/theme"
)

// Formatter formats themes and timetables for output.
type Formatter interface {
	// FormatTheme writes a formatted theme to the writer.
	FormatTheme(w io.Writer, t theme.Theme) error
	// FormatSchedule writes a formatted timetable to the writer.
	FormatSchedule(w io.Writer, data *schedule.TimetableData) error
}

// FormatType represents an output format type.
type FormatType string

const (
	FormatJSON  FormatType = "json"
	FormatYAML  FormatType = "yaml"
	FormatPlain FormatType = "plain"
	FormatCSV   FormatType = "csv"
	FormatTable FormatType = "table"
)

// FormatTypes lists the accepted format names.
var FormatTypes = []FormatType{FormatJSON, FormatYAML, FormatPlain, FormatCSV, FormatTable}

// ParseFormat parses a format name, case-insensitively.
func ParseFormat(name string) (FormatType, error) {
	f := FormatType(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range FormatTypes {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown format %q (want one of %s)", name, joinFormats())
}

func joinFormats() string {
	names := make([]string, len(FormatTypes))
	for i, f := range FormatTypes {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

// NewFormatter creates a formatter for the specified format type.
func NewFormatter(format FormatType, opts FormatterOptions) Formatter {
	switch format {
	case FormatJSON:
		return NewJSONFormatter(opts)
	case FormatYAML:
		return NewYAMLFormatter(opts)
	case FormatTable:
		return NewTableFormatter(opts)
	case FormatPlain, FormatCSV:
		fallthrough
	default:
		return NewPlainFormatter(opts)
	}
}

// FormatterOptions configures formatter behavior.
type FormatterOptions struct {
	Delimiter rune        // Field delimiter for plain/csv schedules
	Compact   bool        // Single-line JSON
	Style     theme.Theme // Colors used by the table formatter
	NoColor   bool        // Disable table colors
}

// DefaultFormatterOptions returns sensible defaults.
func DefaultFormatterOptions() FormatterOptions {
	return FormatterOptions{
		Delimiter: schedule.DefaultDelimiter,
		Style:     theme.Default(),
	}
}
