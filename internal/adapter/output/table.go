package output

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/jmylchreest/timetable/internal/schedule"
	"github.com/jmylchreest/timetable/internal/theme"
)

// TableFormatter renders bordered terminal tables styled with theme colors.
type TableFormatter struct {
	opts FormatterOptions
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(opts FormatterOptions) *TableFormatter {
	return &TableFormatter{opts: opts}
}

// FormatTheme lists every theme property with a color swatch.
func (f *TableFormatter) FormatTheme(w io.Writer, t theme.Theme) error {
	rows := [][]string{
		{"background", t.Background, f.swatch(t.Background)},
		{"foreground", t.Foreground, f.swatch(t.Foreground)},
		{"selection_background", t.SelectionBackground, f.swatch(t.SelectionBackground)},
		{"font_family", t.FontFamily, ""},
		{"font_size", strconv.FormatFloat(t.FontSize, 'f', -1, 64), ""},
	}
	for i, c := range t.Palette {
		rows = append(rows, []string{fmt.Sprintf("color%d", i), c, f.swatch(c)})
	}

	tbl := f.newTable().
		Headers("KEY", "VALUE", "").
		Rows(rows...)

	_, err := fmt.Fprintln(w, tbl.Render())
	return err
}

// FormatSchedule renders the timetable grid. Each day column takes its
// header color from the palette.
func (f *TableFormatter) FormatSchedule(w io.Writer, data *schedule.TimetableData) error {
	headers := append([]string{""}, data.Headers...)

	width := len(headers)
	rows := make([][]string, len(data.Grid))
	for i, cells := range data.Grid {
		slot := ""
		if i < len(data.TimeSlots) {
			slot = data.TimeSlots[i]
		}
		row := append([]string{slot}, cells...)
		if len(row) > width {
			width = len(row)
		}
		rows[i] = row
	}

	// Short rows are padded so the table stays rectangular.
	for len(headers) < width {
		headers = append(headers, "")
	}
	for i := range rows {
		for len(rows[i]) < width {
			rows[i] = append(rows[i], "")
		}
	}

	style := f.opts.Style
	tbl := f.newTable().
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := lipgloss.NewStyle().Padding(0, 1)
			if f.opts.NoColor {
				return s
			}
			switch {
			case row == table.HeaderRow && col > 0:
				return s.Bold(true).Foreground(lipgloss.Color(style.Color(col - 1)))
			case row == table.HeaderRow, col == 0:
				return s.Bold(true).Foreground(lipgloss.Color(style.Foreground))
			case row%2 == 1:
				return s.Background(lipgloss.Color(style.SelectionBackground))
			default:
				return s
			}
		})

	_, err := fmt.Fprintln(w, tbl.Render())
	return err
}

func (f *TableFormatter) newTable() *table.Table {
	tbl := table.New().Border(lipgloss.RoundedBorder())
	if !f.opts.NoColor {
		tbl = tbl.BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color(f.opts.Style.Color(0))))
	}
	return tbl.StyleFunc(func(row, col int) lipgloss.Style {
		s := lipgloss.NewStyle().Padding(0, 1)
		if row == table.HeaderRow && !f.opts.NoColor {
			return s.Bold(true).Foreground(lipgloss.Color(f.opts.Style.Foreground))
		}
		return s
	})
}

// swatch renders a small block painted in color c.
func (f *TableFormatter) swatch(c string) string {
	if f.opts.NoColor {
		return ""
	}
	return lipgloss.NewStyle().Background(lipgloss.Color(c)).Render("    ")
}
