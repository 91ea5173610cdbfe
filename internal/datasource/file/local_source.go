// Package file implements a local filesystem-backed data source for element
// documents.
package file

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

var (
	// ErrNotFound is returned when the document path does not exist.
	ErrNotFound = errors.New("document not found")
	// ErrNotAFile is returned when the document path exists but is not a
	// regular file (a directory, device, socket, ...).
	ErrNotAFile = errors.New("document path is not a regular file")
)

// Local is a filesystem data source bound to one document path.
type Local struct{ path string }

// NewLocal returns a new Local data source bound to the provided filesystem
// path. The returned value is safe for concurrent use.
func NewLocal(path string) *Local { return &Local{path: path} }

// Path returns the configured document path.
func (l *Local) Path() string { return l.path }

// Open opens the configured path for reading.
//
// Behavior:
//   - If the context is already canceled, Open returns the context error
//     without touching the filesystem.
//   - A missing path yields ErrNotFound, a non-regular file ErrNotAFile.
//     Both still satisfy errors.Is(err, os.ErrNotExist) style checks on the
//     underlying cause where one exists.
func (l *Local) Open(ctx context.Context) (io.ReadCloser, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	fi, err := os.Stat(l.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("open %s: %w: %w", l.path, ErrNotFound, err)
		}
		return nil, fmt.Errorf("stat %s: %w", l.path, err)
	}
	if !fi.Mode().IsRegular() {
		return nil, fmt.Errorf("open %s: %w (mode %s)", l.path, ErrNotAFile, fi.Mode().Type())
	}

	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", l.path, err)
	}
	return f, nil
}

// ReadDocument reads the whole document at path.
func ReadDocument(ctx context.Context, path string) ([]byte, error) {
	rc, err := NewLocal(path).Open(ctx)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	b, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return b, nil
}
