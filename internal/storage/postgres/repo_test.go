package postgres

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"o3ddl/internal/storage"
)

// fakeTx implements the pgx.Tx methods ExecScript uses; the embedded
// interface panics on anything else.
type fakeTx struct {
	pgx.Tx
	execd      []string
	failAt     int
	failErr    error
	committed  bool
	rolledBack bool
}

func (f *fakeTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if len(f.execd) == f.failAt {
		return pgconn.CommandTag{}, f.failErr
	}
	f.execd = append(f.execd, sql)
	return pgconn.NewCommandTag("CREATE TABLE"), nil
}

func (f *fakeTx) Commit(ctx context.Context) error {
	f.committed = true
	return nil
}

func (f *fakeTx) Rollback(ctx context.Context) error {
	if !f.committed {
		f.rolledBack = true
	}
	return nil
}

type fakePool struct {
	tx       *fakeTx
	beginErr error
}

func (p *fakePool) Begin(ctx context.Context) (pgx.Tx, error) {
	if p.beginErr != nil {
		return nil, p.beginErr
	}
	return p.tx, nil
}

func (p *fakePool) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return p.tx.Exec(ctx, sql, args...)
}

func TestExecScript_Commits(t *testing.T) {
	t.Parallel()

	ft := &fakeTx{failAt: -1}
	r := &Repository{pool: &fakePool{tx: ft}}
	stmts := []string{"CREATE TABLE a (x integer);", "CREATE INDEX ix ON a (x);"}

	n, err := r.ExecScript(context.Background(), stmts)
	if err != nil {
		t.Fatalf("ExecScript: %v", err)
	}
	if n != 2 || !ft.committed || ft.rolledBack {
		t.Fatalf("n=%d committed=%v rolledBack=%v, want 2 true false", n, ft.committed, ft.rolledBack)
	}
	if !reflect.DeepEqual(ft.execd, stmts) {
		t.Fatalf("executed %q, want %q", ft.execd, stmts)
	}
}

func TestExecScript_RollsBackWithSQLState(t *testing.T) {
	t.Parallel()

	pgErr := &pgconn.PgError{Code: "42P07", Message: `relation "a" already exists`}
	ft := &fakeTx{failAt: 0, failErr: pgErr}
	r := &Repository{pool: &fakePool{tx: ft}}

	n, err := r.ExecScript(context.Background(), []string{"CREATE TABLE a (x integer);"})
	var se *storage.StatementError
	if !errors.As(err, &se) || se.Index != 0 {
		t.Fatalf("err = %v, want *StatementError at 0", err)
	}
	if n != 0 || ft.committed || !ft.rolledBack {
		t.Fatalf("n=%d committed=%v rolledBack=%v, want 0 false true", n, ft.committed, ft.rolledBack)
	}
	if !strings.Contains(err.Error(), "sqlstate 42P07") {
		t.Fatalf("err = %q, want sqlstate", err)
	}
	var got *pgconn.PgError
	if !errors.As(err, &got) || got.Code != "42P07" {
		t.Fatalf("PgError not preserved: %v", err)
	}
}

func TestExecScript_BeginFails(t *testing.T) {
	t.Parallel()

	boom := errors.New("connection refused")
	r := &Repository{pool: &fakePool{beginErr: boom}}
	if _, err := r.ExecScript(context.Background(), []string{"SELECT 1;"}); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
}

func TestDescribe(t *testing.T) {
	t.Parallel()

	withDetail := &pgconn.PgError{Code: "23503", Detail: `Key (PatientId)=(1) is not present in table "Patient".`}
	if got := describe(withDetail).Error(); !strings.HasPrefix(got, `Key (PatientId)=(1) is not present in table "Patient". (23503): `) {
		t.Fatalf("describe(detail) = %q", got)
	}
	plain := errors.New("plain")
	if describe(plain) != plain || describe(nil) != nil {
		t.Fatalf("describe should pass through non-server errors")
	}
}
