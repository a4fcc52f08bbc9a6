// Package report orchestrates a usage report run: fetch the admin roster,
// fetch the request log, enrich and write the outputs, and optionally
// archive the run to Postgres.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/awheeler/merakiusage/internal/model"
)

// PipelineError wraps an error with the phase where it occurred.
type PipelineError struct {
	Phase string
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("%s: %s", e.Phase, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// Client is the slice of the dashboard API the pipeline needs.
type Client interface {
	Admins(ctx context.Context, orgID string) ([]model.Admin, error)
	APIRequests(ctx context.Context, orgID string, timespanSeconds int) ([]model.APIRequest, error)
}

// Params carries one run's inputs. StartedAt names the output files, so the
// caller fixes it before any fetching begins.
type Params struct {
	OrgID           string
	TimespanSeconds int
	OutDir          string
	Parquet         bool
	StartedAt       time.Time
}

// Run executes the report pipeline: admins → requests → write → archive.
// The archive phase runs only when pool is non-nil. An empty request log is
// not an error; the run produces a header-only CSV and empty summaries.
func Run(ctx context.Context, client Client, pool *pgxpool.Pool, log zerolog.Logger, p Params) (*model.RunSummary, error) {
	totalStart := time.Now()

	summary := &model.RunSummary{
		RunID:           uuid.New(),
		OrgID:           p.OrgID,
		TimespanSeconds: p.TimespanSeconds,
		StartedAt:       p.StartedAt,
	}

	// Phase 1: admin roster
	log.Info().Str("org", p.OrgID).Msg("fetching organization admins")
	fetchStart := time.Now()
	admins, err := client.Admins(ctx, p.OrgID)
	if err != nil {
		return nil, &PipelineError{Phase: "admins", Err: err}
	}
	summary.AdminCount = len(admins)

	// Phase 2: request log
	log.Info().Int("timespan_seconds", p.TimespanSeconds).Msg("fetching api request log")
	records, err := client.APIRequests(ctx, p.OrgID, p.TimespanSeconds)
	if err != nil {
		return nil, &PipelineError{Phase: "requests", Err: err}
	}
	summary.RecordsFetched = len(records)
	summary.DurationFetch = time.Since(fetchStart)
	log.Info().
		Int("records", summary.RecordsFetched).
		Str("duration", summary.DurationFetch.String()).
		Msg("fetch complete")

	// Phase 3: enrich and write
	writeStart := time.Now()
	if err := writeOutputs(log, admins, records, p, summary); err != nil {
		return nil, &PipelineError{Phase: "write", Err: err}
	}
	summary.DurationWrite = time.Since(writeStart)

	// Phase 4: archive (opt-in)
	if pool != nil {
		archiveStart := time.Now()
		if err := archive(ctx, pool, log, records, summary); err != nil {
			return nil, &PipelineError{Phase: "archive", Err: err}
		}
		summary.DurationArchive = time.Since(archiveStart)
	}

	summary.DurationTotal = time.Since(totalStart)
	log.Info().
		Str("run_id", summary.RunID.String()).
		Int("records", summary.RecordsFetched).
		Int("rows_written", summary.RowsWritten).
		Int("unknown_admins", summary.UnknownAdmins).
		Str("total_duration", summary.DurationTotal.String()).
		Msg("report run complete")

	return summary, nil
}
