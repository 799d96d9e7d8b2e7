package output

import (
	"encoding/json"
	"io"

	"github.com/jmylchreest/timetable/internal/schedule"
	"github.com/jmylchreest/timetable/internal/theme"
)

// JSONFormatter formats values as JSON, using the same field names as the
// request handlers.
type JSONFormatter struct {
	opts FormatterOptions
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter(opts FormatterOptions) *JSONFormatter {
	return &JSONFormatter{opts: opts}
}

// FormatTheme writes the theme as a JSON object.
func (f *JSONFormatter) FormatTheme(w io.Writer, t theme.Theme) error {
	return f.encode(w, t)
}

// FormatSchedule writes the timetable as a JSON object.
func (f *JSONFormatter) FormatSchedule(w io.Writer, data *schedule.TimetableData) error {
	return f.encode(w, data)
}

func (f *JSONFormatter) encode(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	if !f.opts.Compact {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(v)
}
