package schedule

import (
	"encoding/csv"
	"errors"
	"io"
	"unicode/utf8"
)

// DefaultDelimiter separates fields when no delimiter is configured.
const DefaultDelimiter = ','

// ErrInvalidUTF8 is wrapped in a *csv.ParseError for fields that are not valid UTF-8.
var ErrInvalidUTF8 = errors.New("invalid UTF-8 in field")

// ReadRecords parses all delimited records from r.
// Records may have differing field counts and blank lines are skipped.
// Quotes inside unquoted fields are kept literally.
func ReadRecords(r io.Reader, comma rune) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var records [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		for i, field := range record {
			if !utf8.ValidString(field) {
				line, col := reader.FieldPos(i)
				return nil, &csv.ParseError{StartLine: line, Line: line, Column: col, Err: ErrInvalidUTF8}
			}
		}
		records = append(records, record)
	}
	return records, nil
}

// WriteRecords serializes records to w, quoting fields only where needed.
func WriteRecords(w io.Writer, records [][]string, comma rune) error {
	writer := csv.NewWriter(w)
	writer.Comma = comma

	for _, record := range records {
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
