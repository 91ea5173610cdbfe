// Package parser defines the contract shared by document parsers.
package parser

import (
	"io"

	"o3ddl/internal/schema"
)

// Parser turns a whole element document into its per-KeyElement records,
// in document order.
type Parser interface {
	Parse(r io.Reader) ([]schema.Record, error)
}
