// Package sql holds the embedded DDL and queries for the archive database.
package sql

import "embed"

//go:embed migrations/*.sql
var Migrations embed.FS

//go:embed queries/insert_run.sql
var InsertRun string

//go:embed queries/run_totals.sql
var RunTotals string
