package ddlgen

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"o3ddl/internal/schema"
)

// CleanIdentifier keeps only ASCII letters, digits and underscores.
func CleanIdentifier(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if isASCIIAlnum(r) || r == '_' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// CleanLabel prepares a standard-value label for a lookup row: accents are
// folded (NFD, drop Mn, NFC), then anything other than ASCII letters,
// digits, whitespace, underscore or dash is removed.
func CleanLabel(s string) string {
	t := transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		norm.NFC,
	)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		switch {
		case isASCIIAlnum(r), r == '_', r == '-', unicode.IsSpace(r):
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isASCIIAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

// ColumnName derives an attribute's column name: the key-element prefix and
// its "_" separator are dropped from the string code, the rest is cleaned,
// and enumerated attributes get an "Id" suffix.
//
//	Patient_MRN         -> MRN
//	Patient_Gender (sv) -> GenderId
//	Tumor_Size-cm       -> Sizecm
func ColumnName(a *schema.Attribute) string {
	code := a.StringCode
	if _, rest, ok := strings.Cut(code, "_"); ok {
		code = rest
	}
	name := CleanIdentifier(code)
	if a.Enumerated() {
		name += "Id"
	}
	return name
}

// TableName is a key element's string code with spaces removed.
func TableName(ke *schema.KeyElement) string {
	return tableToken(ke.StringCode)
}

func tableToken(code string) string {
	return strings.ReplaceAll(code, " ", "")
}

// LookupTableName names the per-attribute lookup table after the
// attribute's string code.
func LookupTableName(attributeCode string) string {
	return CleanIdentifier(attributeCode)
}

// SharedLookupTable is the single lookup table used in shared mode.
const SharedLookupTable = "StandardValuesLookup"
