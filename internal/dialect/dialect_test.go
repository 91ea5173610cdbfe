package dialect

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"o3ddl/internal/ddl"
)

func TestLookup(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		token   string
		want    string
		wantErr bool
	}{
		{name: "mssql", token: "mssql", want: "mssql"},
		{name: "postgres", token: "postgres", want: "postgres"},
		{name: "trimmed", token: "  postgres ", want: "postgres"},
		{name: "case sensitive", token: "MSSQL", wantErr: true},
		{name: "alias not accepted", token: "psql", wantErr: true},
		{name: "empty", token: "", wantErr: true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c, err := Lookup(tt.token)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownDialect) {
					t.Fatalf("Lookup(%q) err = %v, want ErrUnknownDialect", tt.token, err)
				}
				if !strings.Contains(err.Error(), "mssql, postgres") {
					t.Fatalf("error %q does not list supported dialects", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Lookup(%q) error: %v", tt.token, err)
			}
			if c.Name() != tt.want {
				t.Fatalf("Lookup(%q).Name() = %q, want %q", tt.token, c.Name(), tt.want)
			}
		})
	}
}

func TestKinds(t *testing.T) {
	t.Parallel()

	if got, want := Kinds(), []string{"mssql", "postgres"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Kinds() = %v, want %v", got, want)
	}
}

// Every catalog must map every category.
func TestCatalogsMapAllCategories(t *testing.T) {
	t.Parallel()

	for _, k := range Kinds() {
		c, err := Lookup(k)
		if err != nil {
			t.Fatalf("Lookup(%q): %v", k, err)
		}
		for _, cat := range ddl.Categories {
			if c.MapType(cat) == "" {
				t.Fatalf("%s: no type for %v", k, cat)
			}
		}
		if id := c.IdentityColumn("X"); id.Name != "XId" || !id.PrimaryKey {
			t.Fatalf("%s: identity column = %+v", k, id)
		}
	}
}
