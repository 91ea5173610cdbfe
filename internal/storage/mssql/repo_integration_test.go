//go:build integration

package mssql

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"o3ddl/internal/storage"
)

// getTestDSN reads the MSSQL_TEST_DSN environment variable.
// If it is empty, the caller should skip the test.
func getTestDSN(t *testing.T) string {
	t.Helper()
	dsn := os.Getenv("MSSQL_TEST_DSN")
	if dsn == "" {
		t.Skip("MSSQL_TEST_DSN not set; skipping MSSQL integration tests")
	}
	return dsn
}

// TestExecScriptIntegration creates a system-versioned table and a failing
// script against a real SQL Server and checks commit and rollback.
func TestExecScriptIntegration(t *testing.T) {
	dsn := getTestDSN(t)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	repo, closeFn, err := NewRepository(ctx, Config{DSN: dsn})
	if err != nil {
		t.Fatalf("NewRepository() error = %v, want nil", err)
	}
	defer closeFn()

	cleanup := func() {
		_ = repo.Exec(ctx, "IF OBJECT_ID('dbo.O3ItTest', 'U') IS NOT NULL ALTER TABLE dbo.O3ItTest SET (SYSTEM_VERSIONING = OFF);")
		_ = repo.Exec(ctx, "DROP TABLE IF EXISTS dbo.O3ItTest; DROP TABLE IF EXISTS dbo.O3ItTestHistory;")
	}
	cleanup()
	defer cleanup()

	create := `CREATE TABLE O3ItTest (
  O3ItTestId INT IDENTITY(1, 1) NOT NULL PRIMARY KEY,
  HistoryUser varchar(max) NOT NULL,
  ValidFrom datetime2 GENERATED ALWAYS AS ROW START,
  ValidTo datetime2 GENERATED ALWAYS AS ROW END,
  PERIOD FOR SYSTEM_TIME(ValidFrom, ValidTo)
)
WITH (SYSTEM_VERSIONING = ON (HISTORY_TABLE = dbo.O3ItTestHistory));`

	n, err := repo.ExecScript(ctx, []string{create, "INSERT INTO O3ItTest (HistoryUser) VALUES ('db_creation');"})
	if err != nil {
		t.Fatalf("ExecScript() error = %v", err)
	}
	if n != 2 {
		t.Fatalf("ExecScript() = %d, want 2", n)
	}

	_, err = repo.ExecScript(ctx, []string{"INSERT INTO O3ItTest (HistoryUser) VALUES ('x');", "INSERT INTO Missing (a) VALUES (1);"})
	var se *storage.StatementError
	if !errors.As(err, &se) || se.Index != 1 {
		t.Fatalf("ExecScript() error = %v, want *StatementError at 1", err)
	}
}
