// Package dialect is the catalog of supported SQL dialects. Each entry maps
// the abstract column categories and structural fragments (identity column,
// audit and history columns, foreign-key integer type) onto concrete SQL.
package dialect

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"o3ddl/internal/ddl"
	mssqlddl "o3ddl/internal/storage/mssql/ddl"
	pgddl "o3ddl/internal/storage/postgres/ddl"
)

// ErrUnknownDialect is returned by Lookup for an unsupported token.
var ErrUnknownDialect = errors.New("unknown dialect")

// Catalog is one SQL dialect.
type Catalog interface {
	// Name is the configuration token, e.g. "mssql".
	Name() string

	// MapType returns the physical type for a category, or "" if the
	// category is unknown.
	MapType(c ddl.Category) string
	// FKIntType is the type of foreign-key columns.
	FKIntType() string
	// KeyTextType and CodeTextType are used by lookup-table key columns.
	KeyTextType() string
	CodeTextType() string
	BoolLiteral(v bool) string

	IdentityColumn(table string) ddl.ColumnDef
	HistoryUserColumn() ddl.ColumnDef
	HistoryColumns() []ddl.ColumnDef
	HistoryConstraints() []string
	TableOptions(table string) string

	CreateTableSQL(t ddl.TableDef) (string, error)
}

var catalogs = map[string]Catalog{
	mssqlddl.Dialect{}.Name(): mssqlddl.Dialect{},
	pgddl.Dialect{}.Name():    pgddl.Dialect{},
}

// Lookup returns the catalog for name. Matching is exact after trimming
// surrounding whitespace.
func Lookup(name string) (Catalog, error) {
	c, ok := catalogs[strings.TrimSpace(name)]
	if !ok {
		return nil, fmt.Errorf("%w %q (supported: %s)", ErrUnknownDialect, name, strings.Join(Kinds(), ", "))
	}
	return c, nil
}

// Kinds returns the supported dialect tokens, sorted.
func Kinds() []string {
	out := make([]string, 0, len(catalogs))
	for k := range catalogs {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
