package db_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	embeddedpostgres "github.com/fergusstrange/embedded-postgres"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/awheeler/merakiusage/internal/db"
	"github.com/awheeler/merakiusage/internal/logging"
	"github.com/awheeler/merakiusage/internal/model"
	embedsql "github.com/awheeler/merakiusage/internal/sql"
)

const (
	testPort     = 15433
	testDB       = "merakitest"
	testUser     = "postgres"
	testPassword = "postgres"
)

var (
	testDSN string
	pg      *embeddedpostgres.EmbeddedPostgres
)

func TestMain(m *testing.M) {
	if os.Getenv("MERAKIUSAGE_TEST_PG") == "" {
		fmt.Fprintln(os.Stderr, "SKIP: set MERAKIUSAGE_TEST_PG=1 to run embedded postgres tests")
		os.Exit(0)
	}

	testDSN = fmt.Sprintf("postgresql://%s:%s@localhost:%d/%s?sslmode=disable",
		testUser, testPassword, testPort, testDB)

	pg = embeddedpostgres.NewDatabase(
		embeddedpostgres.DefaultConfig().
			Port(uint32(testPort)).
			Database(testDB).
			Username(testUser).
			Password(testPassword).
			Version(embeddedpostgres.V16).
			StartTimeout(30 * time.Second),
	)

	if err := pg.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to start embedded postgres: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()

	if err := pg.Stop(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to stop embedded postgres: %v\n", err)
	}

	os.Exit(code)
}

// setupDB connects, resets the meraki schema, and applies migrations.
func setupDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	pool, err := pgxpool.New(ctx, testDSN)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}

	if _, err := pool.Exec(ctx, "DROP SCHEMA IF EXISTS meraki CASCADE"); err != nil {
		t.Fatalf("drop schema: %v", err)
	}

	log := logging.Setup("text", false)
	if err := db.ApplyMigrations(ctx, pool, log); err != nil {
		pool.Close()
		t.Fatalf("migrations: %v", err)
	}

	t.Cleanup(func() { pool.Close() })
	return pool
}

func insertRun(t *testing.T, pool *pgxpool.Pool, runID uuid.UUID, recordCount int) {
	t.Helper()
	startedAt := time.Now().UTC().Truncate(time.Microsecond)
	_, err := pool.Exec(context.Background(), embedsql.InsertRun,
		runID, "org_1", startedAt, 86400, 2, recordCount, "meraki_api_requests_test.csv")
	if err != nil {
		t.Fatalf("insert run: %v", err)
	}
}

func TestArchiveRoundTrip(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()

	records := []model.APIRequest{
		{
			AdminID:      "Jo Eng",
			Method:       "GET",
			Host:         "api.meraki.com",
			Path:         "/api/v1/organizations",
			UserAgent:    "python-meraki/1.46.0",
			Ts:           "2026-08-24T15:04:05Z",
			ResponseCode: 200,
			SourceIP:     "203.0.113.7",
			Version:      1,
			OperationID:  "getOrganizations",
		},
		{
			AdminID:      "Sam Ops",
			Method:       "PUT",
			Host:         "api.meraki.com",
			Path:         "/api/v1/networks/N_1",
			Ts:           "2026-08-24T15:05:05Z",
			ResponseCode: 404,
			Version:      1,
			OperationID:  "updateNetwork",
			Extra:        map[string]any{"shard": "us-west"},
		},
		{
			AdminID:      "unknown (admin_9)",
			Method:       "GET",
			Host:         "api.meraki.com",
			Path:         "/api/v1/devices",
			Ts:           "not-a-timestamp",
			ResponseCode: 200,
			Version:      1,
			OperationID:  "getDevices",
		},
	}

	runID := uuid.New()
	insertRun(t, pool, runID, len(records))

	copied, err := pool.CopyFrom(ctx,
		pgx.Identifier{"meraki", "api_requests"},
		model.ArchiveColumns(),
		db.NewRecordSource(runID, records),
	)
	if err != nil {
		t.Fatalf("copy: %v", err)
	}
	if copied != int64(len(records)) {
		t.Fatalf("copied %d rows, want %d", copied, len(records))
	}

	var total int64
	if err := pool.QueryRow(ctx, embedsql.RunTotals, runID).Scan(&total); err != nil {
		t.Fatalf("count rows: %v", err)
	}
	if total != int64(len(records)) {
		t.Fatalf("archived %d rows, want %d", total, len(records))
	}

	// Unparseable ts lands as NULL with the raw string preserved.
	var tsRaw string
	err = pool.QueryRow(ctx,
		"SELECT ts_raw FROM meraki.api_requests WHERE run_id = $1 AND ts IS NULL", runID,
	).Scan(&tsRaw)
	if err != nil {
		t.Fatalf("query null ts row: %v", err)
	}
	if tsRaw != "not-a-timestamp" {
		t.Errorf("ts_raw = %q", tsRaw)
	}

	// Extra fields survive as queryable jsonb.
	var shard string
	err = pool.QueryRow(ctx,
		"SELECT extra->>'shard' FROM meraki.api_requests WHERE run_id = $1 AND extra IS NOT NULL", runID,
	).Scan(&shard)
	if err != nil {
		t.Fatalf("query extra: %v", err)
	}
	if shard != "us-west" {
		t.Errorf("extra shard = %q", shard)
	}
}

func TestCopyEmptyResultSet(t *testing.T) {
	pool := setupDB(t)

	runID := uuid.New()
	insertRun(t, pool, runID, 0)

	copied, err := pool.CopyFrom(context.Background(),
		pgx.Identifier{"meraki", "api_requests"},
		model.ArchiveColumns(),
		db.NewRecordSource(runID, nil),
	)
	if err != nil {
		t.Fatalf("copy: %v", err)
	}
	if copied != 0 {
		t.Fatalf("copied %d rows, want 0", copied)
	}
}

func TestMigrationsIdempotent(t *testing.T) {
	pool := setupDB(t)

	log := logging.Setup("text", false)
	if err := db.ApplyMigrations(context.Background(), pool, log); err != nil {
		t.Fatalf("second apply: %v", err)
	}
}
