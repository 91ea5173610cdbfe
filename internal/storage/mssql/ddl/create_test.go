package ddl

import (
	"strings"
	"testing"

	gddl "o3ddl/internal/ddl"
)

// TestDialectCreateTable renders a full key-element table with the SQL Server
// fragments and checks the exact text.
func TestDialectCreateTable(t *testing.T) {
	t.Parallel()

	d := Dialect{}
	cols := []gddl.ColumnDef{d.IdentityColumn("Patient")}
	cols = append(cols, gddl.ColumnDef{Name: "MRN", SQLType: d.MapType(gddl.String), Null: gddl.NotNull})
	cols = append(cols, d.HistoryUserColumn())
	cols = append(cols, d.HistoryColumns()...)

	got, err := d.CreateTableSQL(gddl.TableDef{
		FQN:         "Patient",
		Columns:     cols,
		Constraints: d.HistoryConstraints(),
		Options:     d.TableOptions("Patient"),
	})
	if err != nil {
		t.Fatalf("CreateTableSQL error: %v", err)
	}

	want := "CREATE TABLE Patient (\n" +
		"  PatientId INT IDENTITY(1, 1) NOT NULL PRIMARY KEY,\n" +
		"  MRN varchar(max) NOT NULL,\n" +
		"  HistoryUser varchar(max) NOT NULL,\n" +
		"  ValidFrom datetime2 GENERATED ALWAYS AS ROW START,\n" +
		"  ValidTo datetime2 GENERATED ALWAYS AS ROW END,\n" +
		"  PERIOD FOR SYSTEM_TIME(ValidFrom, ValidTo)\n" +
		")\n" +
		"WITH (SYSTEM_VERSIONING = ON (HISTORY_TABLE = dbo.PatientHistory));"
	if got != want {
		t.Fatalf("CreateTableSQL =\n%s\nwant:\n%s", got, want)
	}
}

func TestDialectCreateTable_ErrorPrefix(t *testing.T) {
	t.Parallel()

	_, err := Dialect{}.CreateTableSQL(gddl.TableDef{FQN: "t"})
	if err == nil || !strings.HasPrefix(err.Error(), "mssql ddl:") {
		t.Fatalf("err = %v, want mssql ddl: prefix", err)
	}
}

func TestDialectFragments(t *testing.T) {
	t.Parallel()

	d := Dialect{}
	if d.Name() != "mssql" {
		t.Fatalf("Name = %q", d.Name())
	}
	if d.FKIntType() != "INT" || d.KeyTextType() != "varchar(256)" || d.CodeTextType() != "varchar(32)" {
		t.Fatalf("fragments = %q %q %q", d.FKIntType(), d.KeyTextType(), d.CodeTextType())
	}
	if d.BoolLiteral(true) != "1" || d.BoolLiteral(false) != "0" {
		t.Fatalf("BoolLiteral = %q/%q", d.BoolLiteral(true), d.BoolLiteral(false))
	}
}
