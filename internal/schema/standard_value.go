package schema

import (
	"errors"
	"fmt"
	"strings"
)

// ErrStandardValue marks a standard-value token that has no code segment.
var ErrStandardValue = errors.New("standard value has no {code} segment")

// StandardValueError reports an unparseable standard-value token.
type StandardValueError struct {
	KeyElement string
	Attribute  string
	Raw        string
	Err        error
}

func (e *StandardValueError) Error() string {
	return fmt.Sprintf("schema: %s/%s: standard value %q: %v", e.KeyElement, e.Attribute, e.Raw, e.Err)
}

func (e *StandardValueError) Unwrap() error { return e.Err }

// StandardValue is one permitted value of an enumerated attribute.
//
// KeyElement and Attribute are the string codes of the owners. They are
// lookup keys (see Model.Owners), not references.
type StandardValue struct {
	KeyElement string
	Attribute  string
	Label      string
	Code       string
}

func (sv StandardValue) String() string { return sv.Label }

// ParseStandardValue splits a compound token shaped "<label> {<code>[; <extra>]}"
// on its last "{". The label is whitespace-collapsed; the code keeps only the
// text before the first ";".
//
//	"Foo Bar {12}"     -> "Foo Bar", "12"
//	"Baz {34; extra}"  -> "Baz", "34"
func ParseStandardValue(raw string) (label, code string, err error) {
	i := strings.LastIndex(raw, "{")
	if i < 0 {
		return "", "", ErrStandardValue
	}
	code = strings.NewReplacer("{", "", "}", "").Replace(raw[i+1:])
	if j := strings.Index(code, ";"); j >= 0 {
		code = code[:j]
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return "", "", ErrStandardValue
	}
	label = strings.Join(strings.Fields(raw[:i]), " ")
	return label, code, nil
}
