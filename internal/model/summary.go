package model

import (
	"time"

	"github.com/google/uuid"
)

// RunSummary captures metrics from a single report run.
type RunSummary struct {
	RunID           uuid.UUID
	OrgID           string
	TimespanSeconds int
	StartedAt       time.Time
	OutputFile      string
	ParquetFile     string
	AdminCount      int
	RecordsFetched  int
	RowsWritten     int
	UnknownAdmins   int
	RowsArchived    int64
	Methods         *Tally
	ResponseCodes   *Tally
	Operations      *Tally
	DurationFetch   time.Duration
	DurationWrite   time.Duration
	DurationArchive time.Duration
	DurationTotal   time.Duration
}
