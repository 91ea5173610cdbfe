// Package ddl contains Postgres-specific DDL fragments.
package ddl

import gddl "o3ddl/internal/ddl"

// MapType maps a column category onto a Postgres column type.
//
//	Boolean -> boolean
//	Binary  -> bytea
//	Date    -> timestamptz
//	Decimal -> numeric(19,9)
//	Integer -> integer
//	String  -> text
func MapType(c gddl.Category) string {
	switch c {
	case gddl.Boolean:
		return "boolean"
	case gddl.Binary:
		return "bytea"
	case gddl.Date:
		return "timestamptz"
	case gddl.Decimal:
		return "numeric(19,9)"
	case gddl.Integer:
		return "integer"
	case gddl.String:
		return "text"
	default:
		return ""
	}
}

const (
	KeyTextType  = "text"
	CodeTextType = "text"
	FKIntType    = "INTEGER"
)
