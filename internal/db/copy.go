package db

import (
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/awheeler/merakiusage/internal/model"
)

// RecordSource implements pgx.CopyFromSource over a slice of enriched API
// request records, stamping each row with the owning run id. The whole
// result set is already in memory by the time archiving runs, so a slice
// beats streaming here.
type RecordSource struct {
	runID   uuid.UUID
	records []model.APIRequest
	idx     int
	err     error
}

// NewRecordSource returns a CopyFromSource for COPY into meraki.api_requests.
func NewRecordSource(runID uuid.UUID, records []model.APIRequest) *RecordSource {
	return &RecordSource{runID: runID, records: records, idx: -1}
}

// Next advances to the next record. Returns false at the end of the slice or
// after a value conversion error.
func (s *RecordSource) Next() bool {
	if s.err != nil {
		return false
	}
	s.idx++
	return s.idx < len(s.records)
}

// Values returns the current record's values in ArchiveColumns order.
func (s *RecordSource) Values() ([]any, error) {
	vals, err := s.records[s.idx].ArchiveValues(s.runID)
	if err != nil {
		s.err = err
	}
	return vals, err
}

// Err returns any error encountered while producing values.
func (s *RecordSource) Err() error {
	return s.err
}

var _ pgx.CopyFromSource = (*RecordSource)(nil)
