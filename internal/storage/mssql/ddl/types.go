// Package ddl contains SQL Server specific DDL fragments: the physical type
// for each column category, the identity and audit columns, and the
// system-versioned history clauses.
package ddl

import gddl "o3ddl/internal/ddl"

// MapType maps a column category onto a SQL Server column type.
//
//	Boolean -> bit
//	Binary  -> varbinary(max)
//	Date    -> datetime2
//	Decimal -> decimal(19,9)
//	Integer -> int
//	String  -> varchar(max)
//
// An unknown category yields "" so callers can report it.
func MapType(c gddl.Category) string {
	switch c {
	case gddl.Boolean:
		return "bit"
	case gddl.Binary:
		return "varbinary(max)"
	case gddl.Date:
		return "datetime2"
	case gddl.Decimal:
		return "decimal(19,9)"
	case gddl.Integer:
		return "int"
	case gddl.String:
		return "varchar(max)"
	default:
		return ""
	}
}

// Fixed-width types used by lookup tables. varchar(max) cannot be indexed,
// so lookup key columns use bounded widths.
const (
	KeyTextType  = "varchar(256)"
	CodeTextType = "varchar(32)"
	FKIntType    = "INT"
)
