package ddl

// Category is a physical column type category. Dialect packages map each
// category onto a concrete SQL type (see storage/*/ddl.MapType).
type Category int

const (
	Boolean Category = iota + 1
	Binary
	Date
	Decimal
	Integer
	String
)

// Categories lists every category in declaration order.
var Categories = []Category{Boolean, Binary, Date, Decimal, Integer, String}

func (c Category) String() string {
	switch c {
	case Boolean:
		return "Boolean"
	case Binary:
		return "Binary"
	case Date:
		return "Date"
	case Decimal:
		return "Decimal"
	case Integer:
		return "Integer"
	case String:
		return "String"
	default:
		return "Unknown"
	}
}

// Nullability is the NULL clause of a column. Unspecified emits nothing and
// leaves the database default in effect.
type Nullability int

const (
	Unspecified Nullability = iota
	Null
	NotNull
)

func (n Nullability) String() string {
	switch n {
	case Null:
		return "NULL"
	case NotNull:
		return "NOT NULL"
	default:
		return ""
	}
}

// ColumnDef describes a single column in a table definition.
//
// Fields:
//   - Name: column name, emitted as-is
//   - SQLType: target SQL type (e.g., varchar(max), timestamptz)
//   - Extra: raw clause emitted right after the type (e.g., IDENTITY(1, 1),
//     GENERATED ALWAYS AS ROW START)
//   - Null: NULL / NOT NULL / nothing
//   - Default: raw default expression (e.g., 1, CURRENT_TIMESTAMP)
//   - PrimaryKey: whether the column is part of the primary key
type ColumnDef struct {
	Name       string
	SQLType    string
	Extra      string
	Null       Nullability
	Default    string
	PrimaryKey bool
}

// TableDef holds the table name, an ordered list of columns, and raw
// table-level elements (constraints, PERIOD clauses) rendered after the
// columns. Options is a raw suffix placed between the closing parenthesis
// and the terminating semicolon.
type TableDef struct {
	FQN         string
	Columns     []ColumnDef
	Constraints []string
	Options     string
}

// ForeignKeyDef is an ALTER TABLE ... ADD CONSTRAINT ... FOREIGN KEY.
type ForeignKeyDef struct {
	Name       string
	Table      string
	Columns    []string
	RefTable   string
	RefColumns []string
	OnDelete   string
	OnUpdate   string
}

// IndexDef is a non-unique secondary index with optional covered columns.
type IndexDef struct {
	Name    string
	Table   string
	Columns []string
	Include []string
}

// InsertDef is a single-row INSERT. Values are SQL literals, already quoted
// (see QuoteString).
type InsertDef struct {
	Table   string
	Columns []string
	Values  []string
}
