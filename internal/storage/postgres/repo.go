// Package postgres implements a Postgres repository using pgx v5. Postgres
// has transactional DDL, so a generated script is applied atomically.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"o3ddl/internal/storage"
)

// Config holds Postgres repository configuration.
type Config struct {
	DSN string // connection string for pgxpool
}

// beginner is the part of *pgxpool.Pool used by the repository.
type beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Repository is a Postgres-backed implementation of storage.Repository.
type Repository struct {
	pool beginner
}

// NewRepository constructs a Repository and returns a Close function for cleanup.
func NewRepository(ctx context.Context, cfg Config) (*Repository, func(), error) {
	pool, err := pgxpool.New(ctx, cfg.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("pgxpool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("ping: %w", err)
	}
	close := func() { pool.Close() }
	return &Repository{pool: pool}, close, nil
}

// Exec implements storage.Repository.Exec for Postgres.
func (r *Repository) Exec(ctx context.Context, sql string) error {
	_, err := r.pool.Exec(ctx, sql)
	return describe(err)
}

// ExecScript runs stmts in one transaction.
func (r *Repository) ExecScript(ctx context.Context, stmts []string) (int, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	// Rollback after Commit is a no-op.
	defer func() { _ = tx.Rollback(ctx) }()

	for i, s := range stmts {
		if _, err := tx.Exec(ctx, s); err != nil {
			return i, &storage.StatementError{Index: i, SQL: s, Err: describe(err)}
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return len(stmts), fmt.Errorf("commit: %w", err)
	}
	return len(stmts), nil
}

// describe adds SQLSTATE and detail to server errors.
func describe(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Detail != "" {
			return fmt.Errorf("%s (%s): %w", pgErr.Detail, pgErr.SQLState(), err)
		}
		return fmt.Errorf("sqlstate %s: %w", pgErr.SQLState(), err)
	}
	return err
}
