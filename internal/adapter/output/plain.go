package output

import (
	"io"

	"github.com/jmylchreest/timetable/internal/schedule"
	"github.com/jmylchreest/timetable/internal/theme"
)

// PlainFormatter writes values in their on-disk formats: themes as
// theme.conf lines and timetables as CSV.
type PlainFormatter struct {
	opts FormatterOptions
}

// NewPlainFormatter creates a new plain text formatter.
func NewPlainFormatter(opts FormatterOptions) *PlainFormatter {
	if opts.Delimiter == 0 {
		opts.Delimiter = schedule.DefaultDelimiter
	}
	return &PlainFormatter{opts: opts}
}

// FormatTheme writes the theme in theme.conf syntax.
func (f *PlainFormatter) FormatTheme(w io.Writer, t theme.Theme) error {
	_, err := io.WriteString(w, theme.Format(t))
	return err
}

// FormatSchedule writes the timetable as delimited records.
func (f *PlainFormatter) FormatSchedule(w io.Writer, data *schedule.TimetableData) error {
	return schedule.WriteRecords(w, data.Records(), f.opts.Delimiter)
}
