package ddl

import (
	"fmt"

	gddl "o3ddl/internal/ddl"
)

// Dialect renders Postgres DDL. Postgres has no system-versioned tables, so
// history is a single timestamp column defaulted to the insert time.
type Dialect struct{}

func (Dialect) Name() string { return "postgres" }

func (Dialect) MapType(c gddl.Category) string { return MapType(c) }

func (Dialect) FKIntType() string    { return FKIntType }
func (Dialect) KeyTextType() string  { return KeyTextType }
func (Dialect) CodeTextType() string { return CodeTextType }

func (Dialect) BoolLiteral(v bool) string {
	if v {
		return "TRUE"
	}
	return "FALSE"
}

// IdentityColumn returns "<table>Id SERIAL PRIMARY KEY".
func (Dialect) IdentityColumn(table string) gddl.ColumnDef {
	return gddl.ColumnDef{Name: table + "Id", SQLType: "SERIAL", PrimaryKey: true}
}

func (Dialect) HistoryUserColumn() gddl.ColumnDef {
	return gddl.ColumnDef{Name: "HistoryUser", SQLType: "text", Null: gddl.NotNull}
}

func (Dialect) HistoryColumns() []gddl.ColumnDef {
	return []gddl.ColumnDef{
		{Name: "HistoryDateTime", SQLType: "timestamptz", Default: "CURRENT_TIMESTAMP"},
	}
}

func (Dialect) HistoryConstraints() []string { return nil }

func (Dialect) TableOptions(string) string { return "" }

// CreateTableSQL is a thin wrapper over the generic builder, which already
// emits Postgres-compatible syntax.
func (Dialect) CreateTableSQL(t gddl.TableDef) (string, error) {
	sql, err := gddl.BuildCreateTableSQL(t)
	if err != nil {
		return "", fmt.Errorf("postgres %w", err)
	}
	return sql, nil
}
