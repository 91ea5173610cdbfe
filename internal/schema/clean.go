package schema

import (
	"fmt"
	"slices"
	"strings"
)

// CanonicalTypes are the declared data types a cleaned attribute can carry.
var CanonicalTypes = []string{"Boolean", "Binary", "Date", "Decimal", "Integer", "String"}

// Markers of schema metadata rows that the document mixes into
// StandardValuesList.
const (
	referenceSystemMarker = "Reference System"
	icdStandardMarker     = "Current ICD standard"
)

// Clean normalizes an attribute in place and returns the warnings for every
// default it substituted. It runs, in order:
//
//  1. reference-system backfill from the raw standard values list,
//  2. pruning of metadata rows from the parsed standard values,
//  3. declared-type canonicalization.
//
// Clean is idempotent: a second call changes nothing and warns about nothing.
func Clean(a *Attribute) []Warning {
	backfillReferenceSystem(a)
	a.StandardValues = pruneStandardValues(a.StandardValues)
	return canonicalizeType(a)
}

func isMetadataRow(s string) bool {
	return strings.Contains(s, referenceSystemMarker) || strings.Contains(s, icdStandardMarker)
}

func backfillReferenceSystem(a *Attribute) {
	if strings.TrimSpace(a.ReferenceSystem) != "" {
		return
	}
	for _, raw := range a.RawStandardValues {
		i := strings.Index(raw, referenceSystemMarker)
		if i < 0 {
			continue
		}
		rest := strings.TrimLeft(raw[i+len(referenceSystemMarker):], ": ")
		if j := strings.Index(rest, "{"); j >= 0 {
			rest = rest[:j]
		}
		a.ReferenceSystem = strings.TrimSpace(rest)
		return
	}
}

// pruneStandardValues filters into a fresh slice; the input is not mutated.
func pruneStandardValues(in []StandardValue) []StandardValue {
	out := make([]StandardValue, 0, len(in))
	for _, sv := range in {
		if isMetadataRow(sv.Label) {
			continue
		}
		out = append(out, sv)
	}
	return out
}

// typeFix is one step of declared-type canonicalization. The first step
// whose match returns ok decides the type.
type typeFix struct {
	name  string
	match func(a *Attribute) (dataType string, ok bool)
	warn  bool
}

var typeFixes = []typeFix{
	{name: "enumerated", match: func(a *Attribute) (string, bool) {
		return "String", a.Enumerated()
	}},
	{name: "empty", warn: true, match: func(a *Attribute) (string, bool) {
		return "String", a.DataType == ""
	}},
	{name: "canonical", match: func(a *Attribute) (string, bool) {
		return a.DataType, slices.Contains(CanonicalTypes, a.DataType)
	}},
	{name: "alias Int", match: func(a *Attribute) (string, bool) {
		return "Integer", a.DataType == "Int"
	}},
	{name: "alias Numeric", match: func(a *Attribute) (string, bool) {
		return "Decimal", a.DataType == "Numeric"
	}},
	{name: "date by name", match: func(a *Attribute) (string, bool) {
		return "Date", strings.Contains(a.ValueName, "Date")
	}},
	{name: "alias string", match: func(a *Attribute) (string, bool) {
		return "String", a.DataType == "string"
	}},
	{name: "case variant", match: func(a *Attribute) (string, bool) {
		for _, c := range CanonicalTypes {
			if strings.EqualFold(a.DataType, c) {
				return c, true
			}
		}
		return "", false
	}},
	{name: "dicom", match: func(a *Attribute) (string, bool) {
		return "Binary", strings.Contains(strings.ToLower(a.DataType), "dicom")
	}},
	{name: "integer marker", match: func(a *Attribute) (string, bool) {
		return "Integer", strings.Contains(a.DataType, "Int")
	}},
	{name: "decimal marker", match: func(a *Attribute) (string, bool) {
		t := strings.ToLower(a.DataType)
		return "Decimal", strings.Contains(t, "decimal") || strings.Contains(t, "numeric")
	}},
	{name: "unrecognized", warn: true, match: func(a *Attribute) (string, bool) {
		return "String", true
	}},
}

func canonicalizeType(a *Attribute) []Warning {
	for _, fix := range typeFixes {
		t, ok := fix.match(a)
		if !ok {
			continue
		}
		prev := a.DataType
		a.DataType = t
		if fix.warn {
			return []Warning{{
				KeyElement: a.KeyElement,
				Attribute:  a.StringCode,
				Message:    fmt.Sprintf("value data type %q defaulted to %s", prev, t),
			}}
		}
		return nil
	}
	return nil
}
