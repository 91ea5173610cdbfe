// Package storage defines the database boundary used to apply a generated
// script. Backends (mssql, postgres) register a Factory for their kind at
// init time; callers obtain a Repository with New and stay backend-agnostic.
package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Repository executes generated DDL against one database.
type Repository interface {
	// Exec runs a single statement outside any explicit transaction.
	Exec(ctx context.Context, sql string) error
	// ExecScript runs stmts in order inside one transaction and returns the
	// number of statements executed. On failure the transaction is rolled
	// back and the error is a *StatementError.
	ExecScript(ctx context.Context, stmts []string) (int, error)
	Close()
}

// Config selects and configures a backend.
type Config struct {
	Kind string
	DSN  string
}

// Factory opens a Repository for cfg.
type Factory func(ctx context.Context, cfg Config) (Repository, error)

var (
	mu        sync.RWMutex
	factories = map[string]Factory{}
)

// Register registers (or replaces) the Factory for kind. It is typically
// called from backend packages' init() functions.
func Register(kind string, f Factory) {
	mu.Lock()
	defer mu.Unlock()
	factories[kind] = f
}

// New opens a Repository for cfg.Kind.
func New(ctx context.Context, cfg Config) (Repository, error) {
	mu.RLock()
	f, ok := factories[cfg.Kind]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unsupported storage.kind=%s", cfg.Kind)
	}
	return f(ctx, cfg)
}

// ListKinds returns a sorted snapshot of the registered kinds.
func ListKinds() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(factories))
	for k := range factories {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// StatementError reports the statement that failed inside ExecScript.
type StatementError struct {
	// Index is the 0-based position of the statement in the script.
	Index int
	SQL   string
	Err   error
}

func (e *StatementError) Error() string {
	return fmt.Sprintf("statement %d (%s): %v", e.Index+1, firstLine(e.SQL), e.Err)
}

func (e *StatementError) Unwrap() error { return e.Err }

func firstLine(sql string) string {
	for i := 0; i < len(sql); i++ {
		if sql[i] == '\n' {
			return sql[:i] + " ..."
		}
	}
	return sql
}
