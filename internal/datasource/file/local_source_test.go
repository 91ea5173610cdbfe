package file

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestLocalOpen covers success, missing file, directory, and pre-canceled
// context.
func TestLocalOpen(t *testing.T) {
	t.Parallel()

	type tc struct {
		name            string
		prepare         func(t *testing.T) string // returns path to open
		makeCtx         func(t *testing.T) context.Context
		wantErrIs       []error // each checked via errors.Is
		wantErrContains string  // substring expected in error message
		wantContent     string  // if non-empty, verifies read content on success
	}

	writeDoc := func(t *testing.T, payload string) string {
		t.Helper()
		p := filepath.Join(t.TempDir(), "o3.json")
		if err := os.WriteFile(p, []byte(payload), 0o644); err != nil {
			t.Fatalf("write test file: %v", err)
		}
		return p
	}

	cases := []tc{
		{
			name:        "success_reads_content",
			prepare:     func(t *testing.T) string { return writeDoc(t, `[{"KeyElementName":"Patient"}]`) },
			makeCtx:     func(t *testing.T) context.Context { return context.Background() },
			wantContent: `[{"KeyElementName":"Patient"}]`,
		},
		{
			name: "missing_file_is_not_found",
			prepare: func(t *testing.T) string {
				t.Helper()
				return filepath.Join(t.TempDir(), "missing.json")
			},
			makeCtx:         func(t *testing.T) context.Context { return context.Background() },
			wantErrIs:       []error{ErrNotFound, os.ErrNotExist},
			wantErrContains: "missing.json",
		},
		{
			name: "directory_is_not_a_file",
			prepare: func(t *testing.T) string {
				t.Helper()
				return t.TempDir()
			},
			makeCtx:   func(t *testing.T) context.Context { return context.Background() },
			wantErrIs: []error{ErrNotAFile},
		},
		{
			name:    "pre_canceled_context_short_circuits",
			prepare: func(t *testing.T) string { return writeDoc(t, "ignored") },
			makeCtx: func(t *testing.T) context.Context {
				t.Helper()
				ctx, cancel := context.WithCancel(context.Background())
				cancel()
				return ctx
			},
			wantErrIs: []error{context.Canceled},
		},
	}

	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			path := c.prepare(t)
			rc, err := NewLocal(path).Open(c.makeCtx(t))

			if len(c.wantErrIs) > 0 {
				if err == nil {
					t.Fatalf("expected error %v, got nil", c.wantErrIs)
				}
				for _, want := range c.wantErrIs {
					if !errors.Is(err, want) {
						t.Fatalf("errors.Is(%v, %v) = false", err, want)
					}
				}
				if c.wantErrContains != "" && !strings.Contains(err.Error(), c.wantErrContains) {
					t.Fatalf("error %q does not contain substring %q", err, c.wantErrContains)
				}
				if rc != nil {
					_ = rc.Close()
					t.Fatalf("got non-nil ReadCloser on error: %T", rc)
				}
				return
			}

			if err != nil {
				t.Fatalf("Open() unexpected error: %v", err)
			}
			defer rc.Close()

			got, rerr := io.ReadAll(rc)
			if rerr != nil {
				t.Fatalf("reading: %v", rerr)
			}
			if string(got) != c.wantContent {
				t.Fatalf("content mismatch: got %q, want %q", string(got), c.wantContent)
			}
		})
	}
}

func TestReadDocument(t *testing.T) {
	t.Parallel()

	p := filepath.Join(t.TempDir(), "o3.json")
	if err := os.WriteFile(p, []byte("[]"), 0o644); err != nil {
		t.Fatalf("write test file: %v", err)
	}
	got, err := ReadDocument(context.Background(), p)
	if err != nil {
		t.Fatalf("ReadDocument error: %v", err)
	}
	if string(got) != "[]" {
		t.Fatalf("ReadDocument = %q, want %q", got, "[]")
	}

	if _, err := ReadDocument(context.Background(), filepath.Dir(p)); !errors.Is(err, ErrNotAFile) {
		t.Fatalf("ReadDocument(dir) err = %v, want ErrNotAFile", err)
	}
}

// BenchmarkLocalOpen_Success measures the steady-state cost of opening a small
// document.
func BenchmarkLocalOpen_Success(b *testing.B) {
	p := filepath.Join(b.TempDir(), "o3.json")
	if err := os.WriteFile(p, []byte("[]"), 0o644); err != nil {
		b.Fatalf("write test file: %v", err)
	}

	src := NewLocal(p)
	ctx := context.Background()

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		rc, err := src.Open(ctx)
		if err != nil {
			b.Fatal(err)
		}
		if err := rc.Close(); err != nil {
			b.Fatal(err)
		}
	}
}
