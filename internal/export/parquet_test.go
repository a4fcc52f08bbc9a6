package export

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"

	"github.com/awheeler/merakiusage/internal/model"
)

func TestWriteParquetRoundTrip(t *testing.T) {
	rows := []model.RequestParquetRow{
		{
			Ts:           "2026-08-24T15:04:05Z",
			AdminName:    "Jo Eng",
			Method:       "GET",
			Host:         "api.meraki.com",
			Path:         "/api/v1/organizations",
			ResponseCode: 200,
			Version:      1,
			OperationID:  "getOrganizations",
		},
		{
			Ts:           "2026-08-24T15:05:05Z",
			AdminName:    "unknown (admin_9)",
			Method:       "PUT",
			Host:         "api.meraki.com",
			Path:         "/api/v1/networks/N_1",
			QueryString:  "confirmed=true",
			ResponseCode: 404,
			Version:      1,
			OperationID:  "updateNetwork",
		},
	}
	path := filepath.Join(t.TempDir(), "requests.parquet")
	if err := WriteParquet(path, rows); err != nil {
		t.Fatalf("WriteParquet: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	stat, err := f.Stat()
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		t.Fatalf("open parquet: %v", err)
	}

	r := parquet.NewGenericReader[model.RequestParquetRow](pf)
	defer r.Close()
	if r.NumRows() != 2 {
		t.Fatalf("NumRows = %d, want 2", r.NumRows())
	}
	got := make([]model.RequestParquetRow, 2)
	n, err := r.Read(got)
	if err != nil && err != io.EOF {
		t.Fatalf("read rows: %v", err)
	}
	if n != 2 {
		t.Fatalf("read %d rows, want 2", n)
	}
	if got[1].AdminName != "unknown (admin_9)" || got[1].ResponseCode != 404 {
		t.Errorf("row 1 = %+v", got[1])
	}
	if got[0].QueryString != "" {
		t.Errorf("optional field should round-trip empty, got %q", got[0].QueryString)
	}
}

func TestWriteParquetEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.parquet")
	if err := WriteParquet(path, nil); err != nil {
		t.Fatalf("WriteParquet: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("output file missing: %v", err)
	}
}
