// Package ddl defines a small, backend-agnostic model for SQL DDL and helpers
// to render CREATE TABLE, ALTER TABLE, CREATE INDEX and INSERT statements
// from that model.
//
// The package stays generic: it does not assume any specific SQL dialect.
// In particular, it:
//
//   - Does not quote identifiers; names are emitted as-is.
//   - Treats ColumnDef.Default, ColumnDef.Extra, TableDef.Constraints and
//     TableDef.Options as raw SQL (the caller is responsible for dialect
//     correctness).
//
// Backend-specific packages (internal/storage/mssql/ddl,
// internal/storage/postgres/ddl) supply the dialect fragments and wrap
// BuildCreateTableSQL with the same TableDef/ColumnDef types.
package ddl

import (
	"fmt"
	"strings"
)

// BuildCreateTableSQL renders a CREATE TABLE statement from a TableDef.
//
// Rules:
//
//   - t.FQN must be non-empty; it is emitted verbatim as the table name.
//
//   - Each column must have a non-empty Name and SQLType.
//
//   - A column is rendered as:
//
//     <Name> <SQLType> [<Extra>] [NULL|NOT NULL] [DEFAULT <Default>] [PRIMARY KEY]
//
//     PRIMARY KEY is inlined when exactly one column is flagged; several
//     flagged columns produce a PRIMARY KEY (<col1>, <col2>) clause instead.
//
//   - Constraints follow the columns, one per line.
//
//   - The resulting statement has the form:
//
//     CREATE TABLE <FQN> (
//     <col1-def>,
//     ...,
//     <constraint>
//     )[<Options>];
func BuildCreateTableSQL(t TableDef) (string, error) {
	fqn := strings.TrimSpace(t.FQN)
	if fqn == "" {
		return "", fmt.Errorf("ddl: table FQN must not be empty")
	}
	if len(t.Columns) == 0 {
		return "", fmt.Errorf("ddl: at least one column is required")
	}

	pks := make([]string, 0, 1)
	for _, c := range t.Columns {
		if c.PrimaryKey {
			pks = append(pks, strings.TrimSpace(c.Name))
		}
	}
	inlinePK := len(pks) == 1

	lines := make([]string, 0, len(t.Columns)+len(t.Constraints)+1)
	for _, c := range t.Columns {
		col, err := columnSQL(fqn, c, inlinePK)
		if err != nil {
			return "", err
		}
		lines = append(lines, col)
	}
	if len(pks) > 1 {
		lines = append(lines, fmt.Sprintf("PRIMARY KEY (%s)", strings.Join(pks, ", ")))
	}
	for _, con := range t.Constraints {
		if con = strings.TrimSpace(con); con != "" {
			lines = append(lines, con)
		}
	}

	stmt := fmt.Sprintf(
		"CREATE TABLE %s (\n  %s\n)%s;",
		fqn,
		strings.Join(lines, ",\n  "),
		t.Options,
	)
	return stmt, nil
}

func columnSQL(fqn string, c ColumnDef, inlinePK bool) (string, error) {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return "", fmt.Errorf("ddl: column with empty name in table %s", fqn)
	}
	typ := strings.TrimSpace(c.SQLType)
	if typ == "" {
		return "", fmt.Errorf("ddl: column %s missing SQLType", name)
	}

	var sb strings.Builder
	sb.WriteString(name)
	sb.WriteByte(' ')
	sb.WriteString(typ)

	if extra := strings.TrimSpace(c.Extra); extra != "" {
		sb.WriteByte(' ')
		sb.WriteString(extra)
	}
	if n := c.Null.String(); n != "" {
		sb.WriteByte(' ')
		sb.WriteString(n)
	}
	if def := strings.TrimSpace(c.Default); def != "" {
		sb.WriteString(" DEFAULT ")
		// Default is emitted as raw SQL expression.
		sb.WriteString(def)
	}
	if c.PrimaryKey && inlinePK {
		sb.WriteString(" PRIMARY KEY")
	}
	return sb.String(), nil
}
