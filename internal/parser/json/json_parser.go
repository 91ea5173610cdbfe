// Package json decodes O3 element documents into schema records.
//
// The document is a single top-level JSON array of objects, one per
// KeyElement. Before decoding, the text is repaired for known encoding
// artifacts of the published export (see Repair) and a leading UTF-8 BOM is
// dropped. Numbers are decoded as json.Number so codes keep their spelling.
package json

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"o3ddl/internal/schema"
)

// ErrParse marks a document that is not well-formed after repair.
var ErrParse = errors.New("malformed element document")

const utf8BOM = "\uFEFF"

// repairs lists the malformed escaped renderings of "(+ Other)" that the
// export emits, each replaced by the literal word "Other".
var repairs = strings.NewReplacer(
	`(\u002B Other)`, "Other",
	`(\u002BOther)`, "Other",
)

// Repair rewrites known encoding artifacts in the raw document text.
func Repair(text string) string {
	return repairs.Replace(text)
}

// Parser implements parser.Parser for element documents.
type Parser struct{}

// Parse reads r fully and decodes it with ParseDocument.
func (Parser) Parse(r io.Reader) ([]schema.Record, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("json parser: read: %w", err)
	}
	return ParseDocument(b)
}

// ParseDocument strips a BOM, repairs the text and decodes the top-level
// array. Every element must be an object; trailing content after the array
// is rejected.
func ParseDocument(doc []byte) ([]schema.Record, error) {
	text := Repair(strings.TrimPrefix(string(doc), utf8BOM))

	d := json.NewDecoder(strings.NewReader(text))
	// UseNumber so numeric codes survive as written.
	d.UseNumber()

	var root any
	if err := d.Decode(&root); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("%w: empty document", ErrParse)
		}
		return nil, parseError(err)
	}

	arr, ok := root.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: top-level value is %s, want array", ErrParse, jsonKind(root))
	}

	out := make([]schema.Record, 0, len(arr))
	for i, elem := range arr {
		obj, ok := elem.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: element %d is %s, want object", ErrParse, i, jsonKind(elem))
		}
		out = append(out, schema.Record(obj))
	}

	var extra any
	if err := d.Decode(&extra); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing content after top-level array", ErrParse)
	}
	return out, nil
}

func parseError(err error) error {
	var se *json.SyntaxError
	if errors.As(err, &se) {
		return fmt.Errorf("%w: offset %d: %w", ErrParse, se.Offset, err)
	}
	return fmt.Errorf("%w: %w", ErrParse, err)
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	case json.Number:
		return "number"
	default:
		return fmt.Sprintf("%T", v)
	}
}
