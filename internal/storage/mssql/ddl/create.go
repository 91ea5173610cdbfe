package ddl

import (
	"fmt"

	gddl "o3ddl/internal/ddl"
)

// Dialect renders SQL Server DDL. The zero value is ready to use.
type Dialect struct{}

// Name returns the dialect token accepted in configuration.
func (Dialect) Name() string { return "mssql" }

func (Dialect) MapType(c gddl.Category) string { return MapType(c) }

func (Dialect) FKIntType() string    { return FKIntType }
func (Dialect) KeyTextType() string  { return KeyTextType }
func (Dialect) CodeTextType() string { return CodeTextType }

// BoolLiteral renders a bit literal.
func (Dialect) BoolLiteral(v bool) string {
	if v {
		return "1"
	}
	return "0"
}

// IdentityColumn returns "<table>Id INT IDENTITY(1, 1) NOT NULL PRIMARY KEY".
func (Dialect) IdentityColumn(table string) gddl.ColumnDef {
	return gddl.ColumnDef{
		Name:       table + "Id",
		SQLType:    "INT",
		Extra:      "IDENTITY(1, 1)",
		Null:       gddl.NotNull,
		PrimaryKey: true,
	}
}

// HistoryUserColumn is the "last modified by" audit column.
func (Dialect) HistoryUserColumn() gddl.ColumnDef {
	return gddl.ColumnDef{Name: "HistoryUser", SQLType: "varchar(max)", Null: gddl.NotNull}
}

// HistoryColumns are the generated-always period columns of a
// system-versioned temporal table.
func (Dialect) HistoryColumns() []gddl.ColumnDef {
	return []gddl.ColumnDef{
		{Name: "ValidFrom", SQLType: "datetime2", Extra: "GENERATED ALWAYS AS ROW START"},
		{Name: "ValidTo", SQLType: "datetime2", Extra: "GENERATED ALWAYS AS ROW END"},
	}
}

// HistoryConstraints declares the system time period over HistoryColumns.
func (Dialect) HistoryConstraints() []string {
	return []string{"PERIOD FOR SYSTEM_TIME(ValidFrom, ValidTo)"}
}

// TableOptions turns on system versioning into dbo.<table>History.
func (Dialect) TableOptions(table string) string {
	return fmt.Sprintf("\nWITH (SYSTEM_VERSIONING = ON (HISTORY_TABLE = dbo.%sHistory))", table)
}

// CreateTableSQL renders t with the generic builder.
func (Dialect) CreateTableSQL(t gddl.TableDef) (string, error) {
	sql, err := gddl.BuildCreateTableSQL(t)
	if err != nil {
		return "", fmt.Errorf("mssql %w", err)
	}
	return sql, nil
}
