// Package datasource defines where element documents come from.
package datasource

import (
	"context"
	"io"
)

// Source opens one element document.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
}
