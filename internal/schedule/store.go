package schedule

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// TimetableData is the structured view of a schedule file.
// Headers excludes the corner cell, TimeSlots holds the first field of each
// body row and Grid holds the remaining fields, row-major.
type TimetableData struct {
	Headers   []string   `json:"headers" yaml:"headers"`
	TimeSlots []string   `json:"time_slots" yaml:"time_slots"`
	Grid      [][]string `json:"grid" yaml:"grid"`
}

// Cell returns the grid value at (row, col) and whether it exists.
func (d *TimetableData) Cell(row, col int) (string, bool) {
	if row < 0 || row >= len(d.Grid) || col < 0 || col >= len(d.Grid[row]) {
		return "", false
	}
	return d.Grid[row][col], true
}

// Records joins the data back into raw records with an empty corner cell.
func (d *TimetableData) Records() [][]string {
	records := make([][]string, 0, len(d.Grid)+1)
	records = append(records, append([]string{""}, d.Headers...))
	for i, row := range d.Grid {
		slot := ""
		if i < len(d.TimeSlots) {
			slot = d.TimeSlots[i]
		}
		records = append(records, append([]string{slot}, row...))
	}
	return records
}

// FromRecords splits raw records into headers, time slots and grid.
// Empty records are skipped. Irregular row widths are passed through.
func FromRecords(records [][]string) (*TimetableData, error) {
	if len(records) == 0 {
		return nil, ErrEmpty
	}

	data := &TimetableData{
		Headers:   tail(records[0]),
		TimeSlots: []string{},
		Grid:      [][]string{},
	}

	for _, row := range records[1:] {
		if len(row) == 0 {
			continue
		}
		data.TimeSlots = append(data.TimeSlots, row[0])
		data.Grid = append(data.Grid, tail(row))
	}

	return data, nil
}

// SetCell replaces the grid cell (row, col) in raw records, which still carry
// the header row and label column. It reports whether the cell existed.
func SetCell(records [][]string, row, col int, value string) bool {
	r, c := row+1, col+1
	if row < 0 || col < 0 || r >= len(records) || c >= len(records[r]) {
		return false
	}
	records[r][c] = value
	return true
}

func tail(record []string) []string {
	if len(record) == 0 {
		return []string{}
	}
	out := make([]string, len(record)-1)
	copy(out, record[1:])
	return out
}

// Option configures a Store.
type Option func(*Store)

// WithDelimiter sets the field delimiter.
func WithDelimiter(comma rune) Option {
	return func(s *Store) {
		s.comma = comma
	}
}

// WithStrictBounds makes out of range saves return ErrOutOfRange instead of
// being skipped.
func WithStrictBounds(strict bool) Option {
	return func(s *Store) {
		s.strict = strict
	}
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Store reads and writes a schedule file. Every call is a full file round
// trip; nothing is cached between calls.
type Store struct {
	path   string
	comma  rune
	strict bool
	logger *slog.Logger
}

// NewStore creates a Store backed by the file at path.
func NewStore(path string, opts ...Option) *Store {
	s := &Store{
		path:   path,
		comma:  DefaultDelimiter,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads the schedule file.
func (s *Store) Load() (*TimetableData, error) {
	records, err := s.readRecords()
	if err != nil {
		return nil, err
	}

	data, err := FromRecords(records)
	if err != nil {
		return nil, newError(KindEmpty, s.path, err)
	}

	s.logger.Debug("loaded schedule", "path", s.path, "headers", len(data.Headers), "rows", len(data.TimeSlots))
	return data, nil
}

// Save overwrites a single grid cell and rewrites the whole file.
// A cell outside the table is skipped and the file is left untouched,
// unless the store was created with strict bounds.
func (s *Store) Save(row, col int, value string) error {
	records, err := s.readRecords()
	if err != nil {
		return err
	}

	if !SetCell(records, row, col, value) {
		if s.strict {
			return newError(KindRange, s.path, fmt.Errorf("%w: row %d, col %d", ErrOutOfRange, row, col))
		}
		s.logger.Debug("cell out of range, save skipped", "path", s.path, "row", row, "col", col)
		return nil
	}

	var buf bytes.Buffer
	if err := WriteRecords(&buf, records, s.comma); err != nil {
		return newError(KindWrite, s.path, err)
	}

	if err := writeFile(s.path, buf.Bytes()); err != nil {
		return newError(KindWrite, s.path, err)
	}

	s.logger.Debug("saved cell", "path", s.path, "row", row, "col", col)
	return nil
}

func (s *Store) readRecords() ([][]string, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, newError(KindRead, s.path, err)
	}
	defer f.Close()

	records, err := ReadRecords(f, s.comma)
	if err != nil {
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			return nil, newError(KindParse, s.path, err)
		}
		return nil, newError(KindRead, s.path, err)
	}
	return records, nil
}

// writeFile replaces path with data via a temp file and rename, keeping the
// original file mode.
func writeFile(path string, data []byte) error {
	mode := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		os.Remove(tmpPath)
		return err
	}

	return os.Rename(tmpPath, path)
}

// Load reads the schedule at path with default options.
func Load(path string) (*TimetableData, error) {
	return NewStore(path).Load()
}

// Save writes one cell of the schedule at path with default options.
func Save(path string, row, col int, value string) error {
	return NewStore(path).Save(row, col, value)
}
