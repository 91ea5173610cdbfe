package ddlgen

import (
	"fmt"

	"o3ddl/internal/ddl"
	"o3ddl/internal/schema"
)

// foreignKeys emits one ALTER TABLE per distinct ChildElement-Of edge, in
// document order. Instance relationships produce nothing.
func (g *Generator) foreignKeys(m *schema.Model) ([]Statement, []schema.Warning, error) {
	var (
		out      []Statement
		warnings []schema.Warning
	)
	seen := map[string]bool{}
	for _, ke := range m.KeyElements() {
		for _, rel := range ke.ChildOf() {
			parent, ok := m.KeyElementByCode(rel.Predicate)
			if !ok {
				warnings = append(warnings, schema.Warning{
					KeyElement: ke.StringCode,
					Message:    fmt.Sprintf("relationship %s: no key element %q; foreign key constraint skipped", rel, rel.Predicate),
				})
				continue
			}

			subject, predicate := TableName(ke), TableName(parent)
			fk := ddl.ForeignKeyDef{
				Name:       "fk_" + subject + "_" + predicate,
				Table:      subject,
				Columns:    []string{CleanIdentifier(rel.Predicate) + "Id"},
				RefTable:   predicate,
				RefColumns: []string{g.cat.IdentityColumn(predicate).Name},
				OnDelete:   "CASCADE",
				OnUpdate:   "CASCADE",
			}
			if seen[fk.Name] {
				continue
			}
			seen[fk.Name] = true

			sql, err := ddl.BuildForeignKeySQL(fk)
			if err != nil {
				return nil, nil, fmt.Errorf("ddlgen: key element %s: %w", ke.StringCode, err)
			}
			out = append(out, Statement{Kind: AlterTable, Table: subject, SQL: sql})
		}
	}
	return out, warnings, nil
}
