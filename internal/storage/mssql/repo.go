// Package mssql implements a Microsoft SQL Server repository on
// database/sql with the go-mssqldb driver. Generated scripts run inside one
// transaction so a failing statement leaves the database untouched.
package mssql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	mssql "github.com/microsoft/go-mssqldb"
	"github.com/microsoft/go-mssqldb/msdsn"

	"o3ddl/internal/storage"
)

// Config holds MSSQL repository configuration.
type Config struct {
	DSN string
}

// tx is the part of *sql.Tx used by ExecScript.
type tx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	Commit() error
	Rollback() error
}

// Repository is an MSSQL-backed implementation of storage.Repository.
type Repository struct {
	db    *sql.DB
	begin func(ctx context.Context) (tx, error)
}

// NewRepository constructs a Repository and returns a Close function for cleanup.
func NewRepository(ctx context.Context, cfg Config) (*Repository, func(), error) {
	// Validate DSN early to fail fast on obvious mistakes.
	if _, err := msdsn.Parse(cfg.DSN); err != nil {
		return nil, nil, fmt.Errorf("mssql dsn: %w", err)
	}
	db, err := sql.Open("sqlserver", cfg.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("sql.Open: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("ping: %w", err)
	}
	close := func() { _ = db.Close() }
	return newWithDB(db), close, nil
}

func newWithDB(db *sql.DB) *Repository {
	return &Repository{
		db: db,
		begin: func(ctx context.Context) (tx, error) {
			return db.BeginTx(ctx, nil)
		},
	}
}

// Exec executes a single statement.
func (r *Repository) Exec(ctx context.Context, sqlText string) error {
	_, err := r.db.ExecContext(ctx, sqlText)
	return describe(err)
}

// ExecScript runs stmts in one transaction. SQL Server allows DDL inside a
// transaction, so CREATE TABLE ... WITH (SYSTEM_VERSIONING = ON) and the
// trailing ALTER TABLE statements commit or roll back together.
func (r *Repository) ExecScript(ctx context.Context, stmts []string) (int, error) {
	t, err := r.begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	for i, s := range stmts {
		if _, err := t.ExecContext(ctx, s); err != nil {
			_ = t.Rollback()
			return i, &storage.StatementError{Index: i, SQL: s, Err: describe(err)}
		}
	}
	if err := t.Commit(); err != nil {
		return len(stmts), fmt.Errorf("commit: %w", err)
	}
	return len(stmts), nil
}

// describe adds the server error number and line to driver errors.
func describe(err error) error {
	var me mssql.Error
	if errors.As(err, &me) {
		return fmt.Errorf("mssql error %d (line %d): %w", me.Number, me.LineNo, err)
	}
	return err
}
