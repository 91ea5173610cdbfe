package ddl

import (
	"strings"
	"testing"
)

func TestBuildForeignKeySQL(t *testing.T) {
	t.Parallel()

	got, err := BuildForeignKeySQL(ForeignKeyDef{
		Name:       "fk_Tumor_Patient",
		Table:      "Tumor",
		Columns:    []string{"PatientId"},
		RefTable:   "Patient",
		RefColumns: []string{"PatientId"},
		OnDelete:   "CASCADE",
		OnUpdate:   "CASCADE",
	})
	if err != nil {
		t.Fatalf("BuildForeignKeySQL error: %v", err)
	}
	want := "ALTER TABLE Tumor ADD CONSTRAINT fk_Tumor_Patient FOREIGN KEY (PatientId) REFERENCES Patient (PatientId) ON DELETE CASCADE ON UPDATE CASCADE;"
	if got != want {
		t.Fatalf("BuildForeignKeySQL =\n%s\nwant:\n%s", got, want)
	}

	bad := []ForeignKeyDef{
		{Table: "a", RefTable: "b", Columns: []string{"x"}, RefColumns: []string{"y"}},
		{Name: "fk", RefTable: "b", Columns: []string{"x"}, RefColumns: []string{"y"}},
		{Name: "fk", Table: "a", RefTable: "b", Columns: []string{"x"}},
	}
	for i, fk := range bad {
		if _, err := BuildForeignKeySQL(fk); err == nil {
			t.Fatalf("case %d: expected error for %+v", i, fk)
		}
	}
}

func TestBuildIndexSQL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ix   IndexDef
		want string
	}{
		{
			name: "covering",
			ix:   IndexDef{Name: "IX_Gender_NumericCode", Table: "Gender", Columns: []string{"NumericCode"}, Include: []string{"KeyElement", "Attribute"}},
			want: "CREATE INDEX IX_Gender_NumericCode ON Gender (NumericCode) INCLUDE (KeyElement, Attribute);",
		},
		{
			name: "plain",
			ix:   IndexDef{Name: "ix", Table: "t", Columns: []string{"a", "b"}},
			want: "CREATE INDEX ix ON t (a, b);",
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := BuildIndexSQL(tt.ix)
			if err != nil {
				t.Fatalf("BuildIndexSQL error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("BuildIndexSQL = %q, want %q", got, tt.want)
			}
		})
	}

	if _, err := BuildIndexSQL(IndexDef{Name: "ix", Table: "t"}); err == nil || !strings.Contains(err.Error(), "no columns") {
		t.Fatalf("err = %v, want no columns error", err)
	}
}

func TestBuildInsertSQL(t *testing.T) {
	t.Parallel()

	got, err := BuildInsertSQL(InsertDef{
		Table:   "Gender",
		Columns: []string{"StandardValueItemName", "NumericCode"},
		Values:  []string{QuoteString("O'Brien"), QuoteString("1")},
	})
	if err != nil {
		t.Fatalf("BuildInsertSQL error: %v", err)
	}
	want := "INSERT INTO Gender (StandardValueItemName, NumericCode) VALUES ('O''Brien', '1');"
	if got != want {
		t.Fatalf("BuildInsertSQL = %q, want %q", got, want)
	}

	if _, err := BuildInsertSQL(InsertDef{Table: "t", Columns: []string{"a"}}); err == nil {
		t.Fatalf("expected column/value count mismatch error")
	}
}

func TestUniqueConstraint(t *testing.T) {
	t.Parallel()

	got := UniqueConstraint("AK_Lookup_NumericCode", "KeyElement", "Attribute", "NumericCode")
	want := "CONSTRAINT AK_Lookup_NumericCode UNIQUE (KeyElement, Attribute, NumericCode)"
	if got != want {
		t.Fatalf("UniqueConstraint = %q, want %q", got, want)
	}
}

func TestCategoryAndNullabilityStrings(t *testing.T) {
	t.Parallel()

	want := []string{"Boolean", "Binary", "Date", "Decimal", "Integer", "String"}
	for i, c := range Categories {
		if c.String() != want[i] {
			t.Fatalf("Categories[%d] = %q, want %q", i, c, want[i])
		}
	}
	if Category(0).String() != "Unknown" {
		t.Fatalf("zero Category = %q, want Unknown", Category(0))
	}
	if Unspecified.String() != "" || Null.String() != "NULL" || NotNull.String() != "NOT NULL" {
		t.Fatalf("Nullability strings = %q %q %q", Unspecified, Null, NotNull)
	}
}
