package ddl

import (
	"fmt"
	"strings"
)

// BuildForeignKeySQL renders
//
//	ALTER TABLE <Table> ADD CONSTRAINT <Name> FOREIGN KEY (<cols>)
//	REFERENCES <RefTable> (<refcols>) [ON DELETE x] [ON UPDATE y];
//
// on a single line.
func BuildForeignKeySQL(fk ForeignKeyDef) (string, error) {
	switch {
	case strings.TrimSpace(fk.Name) == "":
		return "", fmt.Errorf("ddl: foreign key on %s has no name", fk.Table)
	case strings.TrimSpace(fk.Table) == "" || strings.TrimSpace(fk.RefTable) == "":
		return "", fmt.Errorf("ddl: foreign key %s needs both tables", fk.Name)
	case len(fk.Columns) == 0 || len(fk.Columns) != len(fk.RefColumns):
		return "", fmt.Errorf("ddl: foreign key %s: %d columns reference %d columns", fk.Name, len(fk.Columns), len(fk.RefColumns))
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "ALTER TABLE %s ADD CONSTRAINT %s FOREIGN KEY (%s) REFERENCES %s (%s)",
		fk.Table, fk.Name, strings.Join(fk.Columns, ", "), fk.RefTable, strings.Join(fk.RefColumns, ", "))
	if fk.OnDelete != "" {
		sb.WriteString(" ON DELETE ")
		sb.WriteString(fk.OnDelete)
	}
	if fk.OnUpdate != "" {
		sb.WriteString(" ON UPDATE ")
		sb.WriteString(fk.OnUpdate)
	}
	sb.WriteByte(';')
	return sb.String(), nil
}

// BuildIndexSQL renders CREATE INDEX <Name> ON <Table> (<cols>) [INCLUDE (<cols>)];
func BuildIndexSQL(ix IndexDef) (string, error) {
	if strings.TrimSpace(ix.Name) == "" || strings.TrimSpace(ix.Table) == "" {
		return "", fmt.Errorf("ddl: index needs a name and a table")
	}
	if len(ix.Columns) == 0 {
		return "", fmt.Errorf("ddl: index %s has no columns", ix.Name)
	}
	stmt := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", ix.Name, ix.Table, strings.Join(ix.Columns, ", "))
	if len(ix.Include) > 0 {
		stmt += fmt.Sprintf(" INCLUDE (%s)", strings.Join(ix.Include, ", "))
	}
	return stmt + ";", nil
}

// BuildInsertSQL renders INSERT INTO <Table> (<cols>) VALUES (<values>);
func BuildInsertSQL(in InsertDef) (string, error) {
	if strings.TrimSpace(in.Table) == "" {
		return "", fmt.Errorf("ddl: insert needs a table")
	}
	if len(in.Columns) == 0 || len(in.Columns) != len(in.Values) {
		return "", fmt.Errorf("ddl: insert into %s: %d columns, %d values", in.Table, len(in.Columns), len(in.Values))
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s);",
		in.Table, strings.Join(in.Columns, ", "), strings.Join(in.Values, ", ")), nil
}

// UniqueConstraint renders a named table-level UNIQUE constraint.
func UniqueConstraint(name string, cols ...string) string {
	return fmt.Sprintf("CONSTRAINT %s UNIQUE (%s)", name, strings.Join(cols, ", "))
}

// QuoteString renders s as a single-quoted SQL string literal.
func QuoteString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
