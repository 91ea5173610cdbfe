package ddl

import (
	"testing"

	gddl "o3ddl/internal/ddl"
)

// TestMapType verifies that MapType maps every column category to the
// expected SQL Server column type.
func TestMapType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		cat  gddl.Category
		want string
	}{
		{gddl.Boolean, "bit"},
		{gddl.Binary, "varbinary(max)"},
		{gddl.Date, "datetime2"},
		{gddl.Decimal, "decimal(19,9)"},
		{gddl.Integer, "int"},
		{gddl.String, "varchar(max)"},
		{gddl.Category(0), ""},
		{gddl.Category(99), ""},
	}

	for _, tt := range tests {
		tt := tt // capture for parallel subtests

		t.Run(tt.cat.String(), func(t *testing.T) {
			t.Parallel()

			if got := MapType(tt.cat); got != tt.want {
				t.Fatalf("MapType(%v) = %q, want %q", tt.cat, got, tt.want)
			}
		})
	}
}

// BenchmarkMapType measures MapType across all categories.
func BenchmarkMapType(b *testing.B) {
	cats := gddl.Categories

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = MapType(cats[i%len(cats)])
	}
}
