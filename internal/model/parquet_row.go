package model

// RequestParquetRow mirrors the Parquet schema for one enriched request
// record. The schema is fixed to the canonical fields; extras are CSV-only.
// AdminName holds the resolved display name, not the raw id.
type RequestParquetRow struct {
	Ts           string `parquet:"ts"`
	AdminName    string `parquet:"admin_name"`
	Method       string `parquet:"method"`
	Host         string `parquet:"host"`
	Path         string `parquet:"path"`
	QueryString  string `parquet:"query_string,optional"`
	UserAgent    string `parquet:"user_agent,optional"`
	ResponseCode int32  `parquet:"response_code"`
	SourceIP     string `parquet:"source_ip,optional"`
	Version      int32  `parquet:"version"`
	OperationID  string `parquet:"operation_id"`
}

// ParquetRow converts an enriched record (AdminID already replaced by the
// resolved name) to its Parquet representation.
func (r *APIRequest) ParquetRow() RequestParquetRow {
	return RequestParquetRow{
		Ts:           r.Ts,
		AdminName:    r.AdminID,
		Method:       r.Method,
		Host:         r.Host,
		Path:         r.Path,
		QueryString:  r.QueryString,
		UserAgent:    r.UserAgent,
		ResponseCode: int32(r.ResponseCode),
		SourceIP:     r.SourceIP,
		Version:      int32(r.Version),
		OperationID:  r.OperationID,
	}
}
