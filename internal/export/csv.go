// Package export renders fetched API request records to files: the CSV
// report that is the tool's primary output, and an optional Parquet copy.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/awheeler/merakiusage/internal/model"
)

// Header returns the CSV column list for a result set: the canonical
// dashboard fields in their documented order, then any extra keys the first
// record carried, sorted. An empty result set gets the canonical columns.
func Header(records []model.APIRequest) []string {
	header := model.RequestColumns()
	if len(records) > 0 {
		header = append(header, records[0].ExtraColumns()...)
	}
	return header
}

// ColumnMismatchError reports a record field absent from the CSV header,
// which would otherwise drop data silently.
type ColumnMismatchError struct {
	Field string
}

func (e *ColumnMismatchError) Error() string {
	return fmt.Sprintf("field %q is not in the csv header", e.Field)
}

// CSVWriter writes API request records to a CSV file, one row per record,
// in a fixed header order.
type CSVWriter struct {
	file   *os.File
	w      *csv.Writer
	header []string
	known  map[string]struct{}
	closed bool
}

// NewCSVWriter creates path and writes the header row.
func NewCSVWriter(path string, header []string) (*CSVWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create csv file: %w", err)
	}
	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		f.Close()
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	known := make(map[string]struct{}, len(header))
	for _, col := range header {
		known[col] = struct{}{}
	}
	return &CSVWriter{file: f, w: w, header: header, known: known}, nil
}

// WriteRecord renders one record in header order. A record carrying a field
// the header does not have is a ColumnMismatchError.
func (cw *CSVWriter) WriteRecord(rec *model.APIRequest) error {
	for _, col := range rec.ExtraColumns() {
		if _, ok := cw.known[col]; !ok {
			return &ColumnMismatchError{Field: col}
		}
	}
	row := make([]string, len(cw.header))
	for i, col := range cw.header {
		v, ok := rec.Field(col)
		if !ok {
			continue
		}
		row[i] = formatValue(v)
	}
	if err := cw.w.Write(row); err != nil {
		return fmt.Errorf("write csv row: %w", err)
	}
	return nil
}

// Close flushes buffered rows and closes the file. Safe to call twice, so it
// can be deferred and also checked explicitly on the success path.
func (cw *CSVWriter) Close() error {
	if cw.closed {
		return nil
	}
	cw.closed = true
	cw.w.Flush()
	flushErr := cw.w.Error()
	closeErr := cw.file.Close()
	if flushErr != nil {
		return fmt.Errorf("flush csv: %w", flushErr)
	}
	if closeErr != nil {
		return fmt.Errorf("close csv file: %w", closeErr)
	}
	return nil
}

// formatValue renders a decoded JSON value as a CSV cell.
func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(b)
	}
}
