package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Record is one decoded JSON object from the element document. Numbers are
// kept as json.Number so codes like "0012" or 12 survive unchanged.
type Record map[string]any

var (
	// ErrMissingField marks a required document field that is absent.
	ErrMissingField = errors.New("missing required field")
	// ErrFieldType marks a document field whose JSON type cannot be used.
	ErrFieldType = errors.New("unexpected field type")
	// ErrDuplicateCode marks a string code that is not unique in its scope.
	ErrDuplicateCode = errors.New("duplicate string code")
)

// FieldError reports a problem with one field of one document record.
// Record identifies the owner, e.g. "Patient" or "Patient/Date of Birth".
type FieldError struct {
	Record string
	Field  string
	Err    error
}

func (e *FieldError) Error() string {
	if e.Record == "" {
		return fmt.Sprintf("schema: field %q: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("schema: record %q: field %q: %v", e.Record, e.Field, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

// fieldReader reads required fields by exact name and remembers the owning
// record so every failure names both.
type fieldReader struct {
	owner string
	rec   Record
}

func (r fieldReader) raw(field string) (any, error) {
	v, ok := r.rec[field]
	if !ok {
		return nil, &FieldError{Record: r.owner, Field: field, Err: ErrMissingField}
	}
	return v, nil
}

// String reads a scalar field as text. null becomes "".
func (r fieldReader) String(field string) (string, error) {
	v, err := r.raw(field)
	if err != nil {
		return "", err
	}
	s, ok := scalarString(v)
	if !ok {
		return "", &FieldError{Record: r.owner, Field: field, Err: fmt.Errorf("%w: %T", ErrFieldType, v)}
	}
	return s, nil
}

// Flag reads a yes/no style field. JSON booleans and the tokens
// "yes"/"true"/"y"/"1" (any case) are true; everything else is false.
func (r fieldReader) Flag(field string) (bool, error) {
	v, err := r.raw(field)
	if err != nil {
		return false, err
	}
	if b, ok := v.(bool); ok {
		return b, nil
	}
	s, ok := scalarString(v)
	if !ok {
		return false, &FieldError{Record: r.owner, Field: field, Err: fmt.Errorf("%w: %T", ErrFieldType, v)}
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "true", "y", "1":
		return true, nil
	default:
		return false, nil
	}
}

// Strings reads an array of scalars. null is an empty list.
func (r fieldReader) Strings(field string) ([]string, error) {
	v, err := r.raw(field)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, nil
	}
	arr, ok := v.([]any)
	if !ok {
		return nil, &FieldError{Record: r.owner, Field: field, Err: fmt.Errorf("%w: %T", ErrFieldType, v)}
	}
	out := make([]string, 0, len(arr))
	for i, item := range arr {
		s, ok := scalarString(item)
		if !ok {
			return nil, &FieldError{
				Record: r.owner,
				Field:  fmt.Sprintf("%s[%d]", field, i),
				Err:    fmt.Errorf("%w: %T", ErrFieldType, item),
			}
		}
		out = append(out, s)
	}
	return out, nil
}

// Record reads a nested object.
func (r fieldReader) Record(field string) (Record, error) {
	v, err := r.raw(field)
	if err != nil {
		return nil, err
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, &FieldError{Record: r.owner, Field: field, Err: fmt.Errorf("%w: %T", ErrFieldType, v)}
	}
	return Record(m), nil
}

// Records reads an array of nested objects. null is an empty list.
func (r fieldReader) Records(field string) ([]Record, error) {
	v, err := r.raw(field)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, nil
	}
	arr, ok := v.([]any)
	if !ok {
		return nil, &FieldError{Record: r.owner, Field: field, Err: fmt.Errorf("%w: %T", ErrFieldType, v)}
	}
	out := make([]Record, 0, len(arr))
	for i, item := range arr {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, &FieldError{
				Record: r.owner,
				Field:  fmt.Sprintf("%s[%d]", field, i),
				Err:    fmt.Errorf("%w: %T", ErrFieldType, item),
			}
		}
		out = append(out, Record(m))
	}
	return out, nil
}

// scalarString renders a JSON scalar as text. Booleans keep the spelling
// used by the document's free-text tokens ("True"/"False").
func scalarString(v any) (string, bool) {
	switch x := v.(type) {
	case nil:
		return "", true
	case string:
		return x, true
	case json.Number:
		return x.String(), true
	case bool:
		if x {
			return "True", true
		}
		return "False", true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case int:
		return strconv.Itoa(x), true
	case int64:
		return strconv.FormatInt(x, 10), true
	default:
		return "", false
	}
}
