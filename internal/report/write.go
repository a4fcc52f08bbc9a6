package report

import (
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/awheeler/merakiusage/internal/export"
	"github.com/awheeler/merakiusage/internal/model"
)

const fileTimeLayout = "2006-01-02_15-04-05"

// OutputPath returns the CSV path for a run started at the given time,
// e.g. meraki_api_requests_2026-08-24_15-04-05.csv.
func OutputPath(dir string, startedAt time.Time) string {
	return filepath.Join(dir, "meraki_api_requests_"+startedAt.Format(fileTimeLayout)+".csv")
}

func parquetPath(dir string, startedAt time.Time) string {
	return filepath.Join(dir, "meraki_api_requests_"+startedAt.Format(fileTimeLayout)+".parquet")
}

// writeOutputs resolves admin names, tallies the summary counts, and writes
// the CSV (and optional Parquet copy) in a single pass over the records.
// Records are mutated in place: AdminID carries the display name afterwards.
func writeOutputs(log zerolog.Logger, admins []model.Admin, records []model.APIRequest, p Params, summary *model.RunSummary) error {
	names := model.AdminNames(admins)
	summary.Methods = model.NewTally()
	summary.ResponseCodes = model.NewTally()
	summary.Operations = model.NewTally()

	path := OutputPath(p.OutDir, p.StartedAt)
	w, err := export.NewCSVWriter(path, export.Header(records))
	if err != nil {
		return err
	}
	defer w.Close()

	warned := make(map[string]struct{})
	for i := range records {
		rec := &records[i]

		name, ok := names[rec.AdminID]
		if !ok || name == "" {
			// Requests can outlive their admin (deleted account, SAML
			// user); keep the row rather than failing the report.
			if _, seen := warned[rec.AdminID]; !seen {
				warned[rec.AdminID] = struct{}{}
				log.Warn().Str("admin_id", rec.AdminID).Msg("admin id not in organization roster")
			}
			name = model.UnknownAdmin(rec.AdminID)
			summary.UnknownAdmins++
		}
		rec.AdminID = name

		summary.Methods.Add(rec.Method)
		summary.ResponseCodes.Add(strconv.Itoa(rec.ResponseCode))
		summary.Operations.Add(rec.OperationID)

		if err := w.WriteRecord(rec); err != nil {
			return fmt.Errorf("record %d: %w", i+1, err)
		}
		summary.RowsWritten++
	}

	if err := w.Close(); err != nil {
		return err
	}
	summary.OutputFile = path
	log.Info().Str("file", path).Int("rows", summary.RowsWritten).Msg("csv written")

	if p.Parquet {
		rows := make([]model.RequestParquetRow, len(records))
		for i := range records {
			rows[i] = records[i].ParquetRow()
		}
		pq := parquetPath(p.OutDir, p.StartedAt)
		if err := export.WriteParquet(pq, rows); err != nil {
			return err
		}
		summary.ParquetFile = pq
		log.Info().Str("file", pq).Int("rows", len(rows)).Msg("parquet written")
	}

	return nil
}
