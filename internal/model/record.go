package model

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

// APIRequest is one API call record from the organization's request log.
// The named fields mirror the dashboard's documented response shape; anything
// else the API returns lands in Extra so it passes through to the CSV intact.
type APIRequest struct {
	AdminID      string `json:"adminId"`
	Method       string `json:"method"`
	Host         string `json:"host"`
	Path         string `json:"path"`
	QueryString  string `json:"queryString"`
	UserAgent    string `json:"userAgent"`
	Ts           string `json:"ts"`
	ResponseCode int    `json:"responseCode"`
	SourceIP     string `json:"sourceIp"`
	Version      int    `json:"version"`
	OperationID  string `json:"operationId"`

	// Extra holds fields returned beyond the canonical set, keyed by wire name.
	Extra map[string]any `json:"-"`
}

// RequestColumns returns the canonical column order, matching the dashboard's
// documented field order for apiRequests records. The adminId column carries
// the resolved display name after enrichment.
func RequestColumns() []string {
	return []string{
		"adminId",
		"method",
		"host",
		"path",
		"queryString",
		"userAgent",
		"ts",
		"responseCode",
		"sourceIp",
		"version",
		"operationId",
	}
}

// UnmarshalJSON decodes the canonical fields and captures any remaining
// fields into Extra.
func (r *APIRequest) UnmarshalJSON(data []byte) error {
	type plain APIRequest
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for _, col := range RequestColumns() {
		delete(raw, col)
	}
	if len(raw) == 0 {
		raw = nil
	}
	p.Extra = raw
	*r = APIRequest(p)
	return nil
}

// Field returns the value of a canonical or extra field by its wire name.
func (r *APIRequest) Field(name string) (any, bool) {
	switch name {
	case "adminId":
		return r.AdminID, true
	case "method":
		return r.Method, true
	case "host":
		return r.Host, true
	case "path":
		return r.Path, true
	case "queryString":
		return r.QueryString, true
	case "userAgent":
		return r.UserAgent, true
	case "ts":
		return r.Ts, true
	case "responseCode":
		return r.ResponseCode, true
	case "sourceIp":
		return r.SourceIP, true
	case "version":
		return r.Version, true
	case "operationId":
		return r.OperationID, true
	}
	v, ok := r.Extra[name]
	return v, ok
}

// ExtraColumns returns the record's extra field names in sorted order, so the
// CSV header stays deterministic regardless of JSON decode order.
func (r *APIRequest) ExtraColumns() []string {
	if len(r.Extra) == 0 {
		return nil
	}
	cols := make([]string, 0, len(r.Extra))
	for k := range r.Extra {
		cols = append(cols, k)
	}
	sort.Strings(cols)
	return cols
}

// Timestamp parses the record's ts field; ok is false when it is not RFC3339.
func (r *APIRequest) Timestamp() (time.Time, bool) {
	t, err := time.Parse(time.RFC3339, r.Ts)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ArchiveColumns returns the ordered column names for COPY into
// meraki.api_requests.
func ArchiveColumns() []string {
	return []string{
		"run_id",
		"ts",
		"ts_raw",
		"admin_name",
		"method",
		"host",
		"path",
		"query_string",
		"user_agent",
		"response_code",
		"source_ip",
		"version",
		"operation_id",
		"extra",
	}
}

// ArchiveValues returns the enriched record's values in ArchiveColumns order,
// suitable for pgx CopyFromSource. ts is NULL when the raw value is not
// RFC3339; the raw string is always preserved in ts_raw.
func (r *APIRequest) ArchiveValues(runID uuid.UUID) ([]any, error) {
	var ts *time.Time
	if t, ok := r.Timestamp(); ok {
		ts = &t
	}
	var extra []byte
	if len(r.Extra) > 0 {
		b, err := json.Marshal(r.Extra)
		if err != nil {
			return nil, fmt.Errorf("marshal extra fields: %w", err)
		}
		extra = b
	}
	return []any{
		runID,
		ts,
		r.Ts,
		r.AdminID,
		r.Method,
		r.Host,
		r.Path,
		r.QueryString,
		r.UserAgent,
		r.ResponseCode,
		r.SourceIP,
		r.Version,
		r.OperationID,
		extra,
	}, nil
}
