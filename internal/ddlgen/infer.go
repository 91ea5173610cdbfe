// Package ddlgen compiles a schema.Model into dialect-specific SQL: one
// table per key element, lookup tables for enumerated attributes, and
// foreign-key constraints for parent/child relationships.
//
// Column types and nullability come from two ordered rule chains
// (TypeRules, NullRules). The first rule whose predicate matches decides;
// later rules never override an earlier match.
package ddlgen

import (
	"errors"
	"fmt"
	"strings"

	"o3ddl/internal/ddl"
	"o3ddl/internal/schema"
)

// ErrUnmappedType is returned when no type rule matches an attribute.
var ErrUnmappedType = errors.New("no type rule matched")

// AttributeError reports a fatal generation problem for one attribute.
type AttributeError struct {
	KeyElement string
	Attribute  string
	// Rule names the violated rule chain or field, e.g. "type inference".
	Rule string
	Err  error
}

func (e *AttributeError) Error() string {
	return fmt.Sprintf("ddlgen: %s/%s: %s: %v", e.KeyElement, e.Attribute, e.Rule, e.Err)
}

func (e *AttributeError) Unwrap() error { return e.Err }

// TypeRule maps an attribute to a column category when Match reports true.
type TypeRule struct {
	Name     string
	Match    func(a *schema.Attribute) bool
	Category ddl.Category
}

// TypeRules is the type inference chain in precedence order. Structural
// signals (reference system, enumeration, explicit numeric markers) come
// before naming heuristics.
var TypeRules = []TypeRule{
	{
		Name:     "iso8601 reference system",
		Category: ddl.Date,
		Match:    func(a *schema.Attribute) bool { return strings.Contains(a.ReferenceSystem, "ISO 8601") },
	},
	{
		Name:     "enumerated",
		Category: ddl.String,
		Match:    func(a *schema.Attribute) bool { return a.Enumerated() },
	},
	{
		Name:     "empty declared type",
		Category: ddl.String,
		Match:    func(a *schema.Attribute) bool { return a.DataType == "" },
	},
	{
		Name:     "string",
		Category: ddl.String,
		Match:    func(a *schema.Attribute) bool { return strings.EqualFold(a.DataType, "string") },
	},
	{
		Name:     "integer",
		Category: ddl.Integer,
		Match: func(a *schema.Attribute) bool {
			return strings.Contains(a.DataType, "Integer") || strings.Contains(a.DataType, "Int")
		},
	},
	{
		Name:     "decimal",
		Category: ddl.Decimal,
		Match: func(a *schema.Attribute) bool {
			t := strings.ToLower(a.DataType)
			return strings.Contains(t, "decimal") || strings.Contains(t, "numeric")
		},
	},
	{
		Name:     "boolean",
		Category: ddl.Boolean,
		Match:    func(a *schema.Attribute) bool { return strings.EqualFold(a.DataType, "boolean") },
	},
	{
		Name:     "binary",
		Category: ddl.Binary,
		Match: func(a *schema.Attribute) bool {
			return strings.Contains(strings.ToLower(a.DataType), "dicom") || a.DataType == "Binary"
		},
	},
	{
		Name:     "date",
		Category: ddl.Date,
		Match: func(a *schema.Attribute) bool {
			return strings.Contains(strings.ToLower(a.ValueName), "date") || a.DataType == "Date"
		},
	},
}

// InferType runs TypeRules against a and returns the first match with the
// name of the rule that decided it.
func InferType(a *schema.Attribute) (ddl.Category, string, error) {
	for _, r := range TypeRules {
		if r.Match(a) {
			return r.Category, r.Name, nil
		}
	}
	return 0, "", &AttributeError{
		KeyElement: a.KeyElement,
		Attribute:  a.StringCode,
		Rule:       "type inference",
		Err:        fmt.Errorf("%w for declared type %q", ErrUnmappedType, a.DataType),
	}
}
