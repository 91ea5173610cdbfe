package ddlgen

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"o3ddl/internal/ddl"
	"o3ddl/internal/dialect"
	"o3ddl/internal/schema"
)

var (
	// ErrColumnName marks an attribute whose string code yields no usable
	// or no unique column name.
	ErrColumnName = errors.New("invalid column name")
	// ErrDuplicateTable marks two generated tables with the same name.
	ErrDuplicateTable = errors.New("duplicate table name")
)

// DefaultHistoryUser is written to HistoryUser by generated inserts.
const DefaultHistoryUser = "db_creation"

// LookupMode selects how enumerations are stored.
type LookupMode int

const (
	// PerAttribute emits one lookup table per enumerated attribute.
	PerAttribute LookupMode = iota
	// Shared emits a single StandardValuesLookup table.
	Shared
)

func (m LookupMode) String() string {
	if m == Shared {
		return "shared"
	}
	return "per_attribute"
}

// ParseLookupMode accepts "per_attribute" (or "") and "shared".
func ParseLookupMode(s string) (LookupMode, error) {
	switch strings.TrimSpace(s) {
	case "", "per_attribute":
		return PerAttribute, nil
	case "shared":
		return Shared, nil
	default:
		return 0, fmt.Errorf("ddlgen: unknown lookup mode %q (want per_attribute or shared)", s)
	}
}

// Options control one generation run.
type Options struct {
	PHIAllowed bool
	Lookup     LookupMode
	// Workers bounds concurrent key-element table generation. Values < 1
	// mean sequential.
	Workers int
	// HistoryUser defaults to DefaultHistoryUser.
	HistoryUser string
}

// Generator turns a model into a Script for one dialect. It holds no
// mutable state and may be reused.
type Generator struct {
	cat  dialect.Catalog
	opts Options
}

// New returns a Generator for cat.
func New(cat dialect.Catalog, opts Options) *Generator {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if opts.HistoryUser == "" {
		opts.HistoryUser = DefaultHistoryUser
	}
	return &Generator{cat: cat, opts: opts}
}

// Options returns the effective options.
func (g *Generator) Options() Options { return g.opts }

type tablePlan struct {
	stmt     Statement
	warnings []schema.Warning
	err      error
}

// Generate compiles m. Output is identical for identical input regardless of
// Workers: per-key-element results are reassembled in document order and
// the first failing key element in document order decides the error.
func (g *Generator) Generate(ctx context.Context, m *schema.Model) (*Script, []schema.Warning, error) {
	kes := m.KeyElements()
	plans := make([]tablePlan, len(kes))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.opts.Workers)
	for i, ke := range kes {
		i, ke := i, ke
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			plans[i] = g.keyElementTable(ke)
			return plans[i].err
		})
	}
	waitErr := eg.Wait()
	for _, p := range plans {
		if p.err != nil {
			return nil, nil, p.err
		}
	}
	if waitErr != nil {
		return nil, nil, waitErr
	}

	script := &Script{}
	var warnings []schema.Warning
	tables := map[string]string{} // table -> owner, for collision checks
	for i, p := range plans {
		if prev, ok := tables[p.stmt.Table]; ok {
			return nil, nil, fmt.Errorf("ddlgen: %w: %s (key elements %q and %q)", ErrDuplicateTable, p.stmt.Table, prev, kes[i].StringCode)
		}
		tables[p.stmt.Table] = kes[i].StringCode
		script.Statements = append(script.Statements, p.stmt)
		warnings = append(warnings, p.warnings...)
	}

	stmts, ws, err := g.lookupTables(m, tables)
	if err != nil {
		return nil, nil, err
	}
	script.Statements = append(script.Statements, stmts...)
	warnings = append(warnings, ws...)

	stmts, ws, err = g.foreignKeys(m)
	if err != nil {
		return nil, nil, err
	}
	script.Statements = append(script.Statements, stmts...)
	warnings = append(warnings, ws...)

	return script, warnings, nil
}

// keyElementTable builds the CREATE TABLE for one key element. Column order:
// identity, parent foreign keys, attributes, audit user, history block.
func (g *Generator) keyElementTable(ke *schema.KeyElement) tablePlan {
	table := TableName(ke)
	cols := []ddl.ColumnDef{g.cat.IdentityColumn(table)}
	seen := map[string]string{cols[0].Name: "identity column"}

	for _, rel := range ke.ChildOf() {
		name := CleanIdentifier(rel.Predicate) + "Id"
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = "relationship " + rel.String()
		cols = append(cols, ddl.ColumnDef{Name: name, SQLType: g.cat.FKIntType(), Null: ddl.NotNull})
	}

	var warnings []schema.Warning
	for _, a := range ke.Attributes() {
		col, w, err := g.attributeColumn(a)
		if err != nil {
			return tablePlan{err: err}
		}
		if owner, dup := seen[col.Name]; dup {
			return tablePlan{err: &AttributeError{
				KeyElement: ke.StringCode,
				Attribute:  a.StringCode,
				Rule:       "column name",
				Err:        fmt.Errorf("%w: %q already used by %s", ErrColumnName, col.Name, owner),
			}}
		}
		seen[col.Name] = "attribute " + a.StringCode
		if w != nil {
			warnings = append(warnings, *w)
		}
		cols = append(cols, col)
	}

	cols = append(cols, g.cat.HistoryUserColumn())
	cols = append(cols, g.cat.HistoryColumns()...)

	sql, err := g.cat.CreateTableSQL(ddl.TableDef{
		FQN:         table,
		Columns:     cols,
		Constraints: g.cat.HistoryConstraints(),
		Options:     g.cat.TableOptions(table),
	})
	if err != nil {
		return tablePlan{err: fmt.Errorf("ddlgen: key element %s: %w", ke.StringCode, err)}
	}
	return tablePlan{
		stmt:     Statement{Kind: CreateTable, Table: table, SQL: sql},
		warnings: warnings,
	}
}

// attributeColumn resolves one attribute's column. Enumerated attributes
// become foreign-key integer columns into their lookup table.
func (g *Generator) attributeColumn(a *schema.Attribute) (ddl.ColumnDef, *schema.Warning, error) {
	name := ColumnName(a)
	if name == "" || (a.Enumerated() && name == "Id") {
		return ddl.ColumnDef{}, nil, &AttributeError{
			KeyElement: a.KeyElement,
			Attribute:  a.StringCode,
			Rule:       "column name",
			Err:        fmt.Errorf("%w: string code %q yields %q", ErrColumnName, a.StringCode, name),
		}
	}

	cat, _, err := InferType(a)
	if err != nil {
		return ddl.ColumnDef{}, nil, err
	}
	sqlType := g.cat.MapType(cat)
	if a.Enumerated() {
		sqlType = g.cat.FKIntType()
	}

	null, w := ResolveNullability(a, g.opts.PHIAllowed)
	return ddl.ColumnDef{Name: name, SQLType: sqlType, Null: null}, w, nil
}
