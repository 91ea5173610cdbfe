package mssql

import (
	"context"
	"database/sql"
	"errors"
	"reflect"
	"strings"
	"testing"

	mssql "github.com/microsoft/go-mssqldb"

	"o3ddl/internal/storage"
)

// fakeTx records statements and fails at failAt (when >= 0).
type fakeTx struct {
	execd      []string
	failAt     int
	failErr    error
	committed  bool
	rolledBack bool
}

func (f *fakeTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if len(f.execd) == f.failAt {
		return nil, f.failErr
	}
	f.execd = append(f.execd, query)
	return nil, nil
}
func (f *fakeTx) Commit() error   { f.committed = true; return nil }
func (f *fakeTx) Rollback() error { f.rolledBack = true; return nil }

func repoWith(ft *fakeTx) *Repository {
	return &Repository{begin: func(context.Context) (tx, error) { return ft, nil }}
}

func TestExecScript_Commits(t *testing.T) {
	t.Parallel()

	ft := &fakeTx{failAt: -1}
	stmts := []string{"CREATE TABLE a (x int);", "CREATE TABLE b (y int);"}
	n, err := repoWith(ft).ExecScript(context.Background(), stmts)
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

func TestExecScript_RollsBackAndDescribes(t *testing.T) {
	t.Parallel()

	driverErr := mssql.Error{Number: 2714, LineNo: 1, Message: "There is already an object named 'a' in the database."}
	ft := &fakeTx{failAt: 1, failErr: driverErr}
	n, err := repoWith(ft).ExecScript(context.Background(), []string{"CREATE TABLE a (x int);", "CREATE TABLE a (x int);"})

	var se *storage.StatementError
	if !errors.As(err, &se) || se.Index != 1 {
		t.Fatalf("err = %v, want *StatementError at index 1", err)
	}
	if n != 1 || ft.committed || !ft.rolledBack {
		t.Fatalf("n=%d committed=%v rolledBack=%v, want 1 false true", n, ft.committed, ft.rolledBack)
	}
	if !strings.Contains(err.Error(), "mssql error 2714 (line 1)") {
		t.Fatalf("err = %q, want server error number", err)
	}
	var me mssql.Error
	if !errors.As(err, &me) || me.Number != 2714 {
		t.Fatalf("driver error not preserved: %v", err)
	}
}

func TestExecScript_BeginFails(t *testing.T) {
	t.Parallel()

	boom := errors.New("login failed")
	r := &Repository{begin: func(context.Context) (tx, error) { return nil, boom }}
	if _, err := r.ExecScript(context.Background(), []string{"SELECT 1;"}); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
}

func TestDescribe_PassesOtherErrors(t *testing.T) {
	t.Parallel()

	if describe(nil) != nil {
		t.Fatalf("describe(nil) != nil")
	}
	plain := errors.New("plain")
	if got := describe(plain); got != plain {
		t.Fatalf("describe(plain) = %v, want unchanged", got)
	}
}
