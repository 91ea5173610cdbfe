package ddlgen

import (
	"strings"

	"github.com/zeebo/xxh3"
)

// Kind classifies a generated statement.
type Kind int

const (
	CreateTable Kind = iota + 1
	CreateIndex
	Insert
	AlterTable
)

func (k Kind) String() string {
	switch k {
	case CreateTable:
		return "create_table"
	case CreateIndex:
		return "create_index"
	case Insert:
		return "insert"
	case AlterTable:
		return "alter_table"
	default:
		return "unknown"
	}
}

// Statement is one generated SQL statement, terminated by ";".
type Statement struct {
	Kind  Kind
	Table string
	SQL   string
}

// Script is the ordered output of one generation run: key-element tables in
// document order, then lookup tables with their index and rows, then
// foreign-key constraints.
type Script struct {
	Statements []Statement
}

// Count returns the number of statements of kind k.
func (s *Script) Count(k Kind) int {
	n := 0
	for _, st := range s.Statements {
		if st.Kind == k {
			n++
		}
	}
	return n
}

// Filter returns the statements of kind k, optionally restricted to table
// (empty matches every table).
func (s *Script) Filter(k Kind, table string) []Statement {
	var out []Statement
	for _, st := range s.Statements {
		if st.Kind == k && (table == "" || st.Table == table) {
			out = append(out, st)
		}
	}
	return out
}

// SQL returns the statement texts in order, for execution.
func (s *Script) SQL() []string {
	out := make([]string, len(s.Statements))
	for i, st := range s.Statements {
		out[i] = st.SQL
	}
	return out
}

// String renders the script as text: one statement per line, with a blank
// line before every CREATE TABLE and before the first ALTER TABLE.
func (s *Script) String() string {
	var b strings.Builder
	prev := Kind(0)
	for i, st := range s.Statements {
		if i > 0 && (st.Kind == CreateTable || (st.Kind == AlterTable && prev != AlterTable)) {
			b.WriteByte('\n')
		}
		b.WriteString(st.SQL)
		b.WriteByte('\n')
		prev = st.Kind
	}
	return b.String()
}

// Fingerprint is the xxh3 hash of String. Identical input and options give
// an identical fingerprint.
func (s *Script) Fingerprint() uint64 {
	return xxh3.HashString(s.String())
}
