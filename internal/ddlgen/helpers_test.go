package ddlgen

import (
	"context"
	"testing"

	"o3ddl/internal/dialect"
	"o3ddl/internal/schema"
)

// attrRec returns a complete attribute record as the JSON decoder yields it.
func attrRec(code, name, dataType, allowNull string, values ...string) schema.Record {
	list := make([]any, 0, len(values))
	for _, v := range values {
		list = append(list, v)
	}
	return schema.Record{
		"ValueName":                name,
		"ValueType":                "Attribute",
		"StringCode":               code,
		"NumericCode":              "100",
		"Definition":               "",
		"ValuePriority":            "Required",
		"MoreThanOneValueAllowed":  "No",
		"SCTID":                    "",
		"NCITC":                    "",
		"NCIMT":                    "",
		"ValueDataType":            dataType,
		"StandardValuesUse":        "",
		"StandardValuesList":       list,
		"ReferenceSystemForValues": "",
		"AllowNullValues":          allowNull,
		"ValueExample":             "",
	}
}

func relRec(subject, category, predicate string) schema.Record {
	return schema.Record{
		"SubjectElement":       subject,
		"RelationshipCategory": category,
		"PredicateElement":     predicate,
		"Cardinality":          "N:1",
	}
}

func keRec(code string, attrs []schema.Record, rels ...schema.Record) schema.Record {
	al := make([]any, 0, len(attrs))
	for _, a := range attrs {
		al = append(al, map[string]any(a))
	}
	rl := make([]any, 0, len(rels))
	for _, r := range rels {
		rl = append(rl, map[string]any(r))
	}
	return schema.Record{
		"KeyElementName": code,
		"keyelementdetail": map[string]any{
			"ValueName":                code,
			"ValueType":                "KeyElement",
			"StringCode":               code,
			"NumericCode":              "1",
			"Definition":               "",
			"ValuePriority":            "Required",
			"MoreThanOneValueAllowed":  "No",
			"SCTID":                    "",
			"NCITC":                    "",
			"NCIMT":                    "",
			"IsLongitudinalKeyElement": "No",
		},
		"list_attributes":    al,
		"list_relationships": rl,
	}
}

func mustModel(t testing.TB, opts schema.BuildOptions, recs ...schema.Record) *schema.Model {
	t.Helper()
	m, _, err := schema.NewModel(recs, opts)
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}
	return m
}

func mustCatalog(t testing.TB, name string) dialect.Catalog {
	t.Helper()
	c, err := dialect.Lookup(name)
	if err != nil {
		t.Fatalf("dialect.Lookup(%q): %v", name, err)
	}
	return c
}

func mustGenerate(t testing.TB, dialectName string, opts Options, m *schema.Model) (*Script, []schema.Warning) {
	t.Helper()
	s, ws, err := New(mustCatalog(t, dialectName), opts).Generate(context.Background(), m)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return s, ws
}
