package ddlgen

import (
	"fmt"

	"o3ddl/internal/ddl"
	"o3ddl/internal/schema"
)

// lookupTables emits the enumeration storage: per attribute, or one shared
// table. tables holds the names already taken by key-element tables.
func (g *Generator) lookupTables(m *schema.Model, tables map[string]string) ([]Statement, []schema.Warning, error) {
	if len(m.StandardValueLists) == 0 {
		return nil, nil, nil
	}

	if g.opts.Lookup == Shared {
		if owner, ok := tables[SharedLookupTable]; ok {
			return nil, nil, fmt.Errorf("ddlgen: %w: %s (key element %q)", ErrDuplicateTable, SharedLookupTable, owner)
		}
		var all []schema.StandardValue
		for _, l := range m.StandardValueLists {
			all = append(all, l.Values...)
		}
		return g.lookupBlock(SharedLookupTable, all, true)
	}

	var (
		out      []Statement
		warnings []schema.Warning
	)
	for _, l := range m.StandardValueLists {
		table := LookupTableName(l.Attribute)
		if owner, ok := tables[table]; ok {
			return nil, nil, &AttributeError{
				KeyElement: l.KeyElement,
				Attribute:  l.Attribute,
				Rule:       "lookup table name",
				Err:        fmt.Errorf("%w: %s already used by %q", ErrDuplicateTable, table, owner),
			}
		}
		tables[table] = l.Attribute

		stmts, ws, err := g.lookupBlock(table, l.Values, false)
		if err != nil {
			return nil, nil, err
		}
		out = append(out, stmts...)
		warnings = append(warnings, ws...)
	}
	return out, warnings, nil
}

// lookupBlock renders CREATE TABLE, the covering index on NumericCode and one
// INSERT per value. A shared table is unique on (KeyElement, Attribute,
// NumericCode) since codes repeat across enumerations.
func (g *Generator) lookupBlock(table string, values []schema.StandardValue, shared bool) ([]Statement, []schema.Warning, error) {
	keyText := g.cat.KeyTextType()
	cols := []ddl.ColumnDef{
		g.cat.IdentityColumn(table),
		{Name: "KeyElement", SQLType: keyText, Null: ddl.NotNull},
		{Name: "Attribute", SQLType: keyText, Null: ddl.NotNull},
		{Name: "StandardValueItemName", SQLType: keyText, Null: ddl.NotNull},
		{Name: "NumericCode", SQLType: g.cat.CodeTextType(), Null: ddl.NotNull},
		{Name: "ActiveFlag", SQLType: g.cat.MapType(ddl.Boolean), Null: ddl.NotNull, Default: g.cat.BoolLiteral(true)},
		g.cat.HistoryUserColumn(),
	}
	cols = append(cols, g.cat.HistoryColumns()...)

	unique := []string{"NumericCode"}
	if shared {
		unique = []string{"KeyElement", "Attribute", "NumericCode"}
	}
	constraints := append(append([]string(nil), g.cat.HistoryConstraints()...),
		ddl.UniqueConstraint("AK_"+table+"_NumericCode", unique...))

	create, err := g.cat.CreateTableSQL(ddl.TableDef{
		FQN:         table,
		Columns:     cols,
		Constraints: constraints,
		Options:     g.cat.TableOptions(table),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("ddlgen: lookup table %s: %w", table, err)
	}
	index, err := ddl.BuildIndexSQL(ddl.IndexDef{
		Name:    "IX_" + table + "_NumericCode",
		Table:   table,
		Columns: []string{"NumericCode"},
		Include: []string{"KeyElement", "Attribute"},
	})
	if err != nil {
		return nil, nil, fmt.Errorf("ddlgen: lookup table %s: %w", table, err)
	}

	out := make([]Statement, 0, len(values)+2)
	out = append(out,
		Statement{Kind: CreateTable, Table: table, SQL: create},
		Statement{Kind: CreateIndex, Table: table, SQL: index},
	)

	type rowKey struct{ keyElement, attribute, code string }
	seen := map[rowKey]bool{}
	var warnings []schema.Warning
	for _, sv := range values {
		k := rowKey{sv.KeyElement, sv.Attribute, sv.Code}
		if seen[k] {
			warnings = append(warnings, schema.Warning{
				KeyElement: sv.KeyElement,
				Attribute:  sv.Attribute,
				Message:    fmt.Sprintf("standard value code %q repeated in %s; the insert will violate AK_%s_NumericCode", sv.Code, table, table),
			})
		}
		seen[k] = true

		sql, err := ddl.BuildInsertSQL(ddl.InsertDef{
			Table:   table,
			Columns: []string{"KeyElement", "Attribute", "StandardValueItemName", "NumericCode", "HistoryUser"},
			Values: []string{
				ddl.QuoteString(sv.KeyElement),
				ddl.QuoteString(sv.Attribute),
				ddl.QuoteString(CleanLabel(sv.Label)),
				ddl.QuoteString(sv.Code),
				ddl.QuoteString(g.opts.HistoryUser),
			},
		})
		if err != nil {
			return nil, nil, fmt.Errorf("ddlgen: lookup table %s: %w", table, err)
		}
		out = append(out, Statement{Kind: Insert, Table: table, SQL: sql})
	}
	return out, warnings, nil
}
