package output

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/timetable/internal/schedule"
	"github.com/jmylchreest/timetable/internal/theme"
)

// YAMLFormatter formats values as YAML.
type YAMLFormatter struct {
	opts FormatterOptions
}

// NewYAMLFormatter creates a new YAML formatter.
func NewYAMLFormatter(opts FormatterOptions) *YAMLFormatter {
	return &YAMLFormatter{opts: opts}
}

// FormatTheme writes the theme as a YAML document.
func (f *YAMLFormatter) FormatTheme(w io.Writer, t theme.Theme) error {
	return encodeYAML(w, t)
}

// FormatSchedule writes the timetable as a YAML document.
func (f *YAMLFormatter) FormatSchedule(w io.Writer, data *schedule.TimetableData) error {
	return encodeYAML(w, data)
}

func encodeYAML(w io.Writer, v any) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return err
	}
	return encoder.Close()
}
