package export

import (
	"fmt"
	"os"

	"github.com/parquet-go/parquet-go"

	"github.com/awheeler/merakiusage/internal/model"
)

// WriteParquet writes the enriched rows to path using the canonical typed
// schema. Extra fields are not carried; the CSV stays the lossless output.
func WriteParquet(path string, rows []model.RequestParquetRow) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create parquet file: %w", err)
	}

	w := parquet.NewGenericWriter[model.RequestParquetRow](f)
	if _, err := w.Write(rows); err != nil {
		f.Close()
		return fmt.Errorf("write parquet rows: %w", err)
	}
	if err := w.Close(); err != nil {
		f.Close()
		return fmt.Errorf("close parquet writer: %w", err)
	}
	return f.Close()
}
