package report

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/awheeler/merakiusage/internal/db"
	"github.com/awheeler/merakiusage/internal/model"
	embedsql "github.com/awheeler/merakiusage/internal/sql"
)

// archive records the run and bulk-copies the enriched records into the
// meraki schema. Records carry resolved admin names by the time this runs.
func archive(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, records []model.APIRequest, summary *model.RunSummary) error {
	_, err := pool.Exec(ctx, embedsql.InsertRun,
		summary.RunID,
		summary.OrgID,
		summary.StartedAt,
		summary.TimespanSeconds,
		summary.AdminCount,
		summary.RecordsFetched,
		summary.OutputFile,
	)
	if err != nil {
		return fmt.Errorf("insert run row: %w", err)
	}

	copied, err := pool.CopyFrom(ctx,
		pgx.Identifier{"meraki", "api_requests"},
		model.ArchiveColumns(),
		db.NewRecordSource(summary.RunID, records),
	)
	if err != nil {
		return fmt.Errorf("copy records: %w", err)
	}
	summary.RowsArchived = copied

	var total int64
	if err := pool.QueryRow(ctx, embedsql.RunTotals, summary.RunID).Scan(&total); err != nil {
		return fmt.Errorf("verify archived rows: %w", err)
	}
	if total != copied {
		log.Warn().Int64("copied", copied).Int64("counted", total).Msg("archived row count mismatch")
	}

	log.Info().Int64("rows", copied).Str("run_id", summary.RunID.String()).Msg("run archived")
	return nil
}
