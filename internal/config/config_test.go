package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

// -----------------------------------------------------------------------------
// Decoding tests
// -----------------------------------------------------------------------------
//
// JSON and YAML configs share field names and both decode over Default, so
// a file only needs the fields it changes.

func TestDecode_JSONAndYAMLAgree(t *testing.T) {
	t.Parallel()

	const js = `{
	  "document": "schema/o3.json",
	  "dialect": "postgres",
	  "phi_allowed": true,
	  "lookup": "shared",
	  "workers": 4,
	  "output": "out/o3.sql",
	  "storage": { "kind": "postgres", "dsn": "postgresql://u@h/db", "apply": true },
	  "fetch": { "max_retries": 5, "bearer_token_env": "O3_TOKEN" },
	  "metrics": { "backend": "pushgateway", "pushgateway_url": "http://gw:9091" }
	}`
	const ym = `
document: schema/o3.json
dialect: postgres
phi_allowed: true
lookup: shared
workers: 4
output: out/o3.sql
storage:
  kind: postgres
  dsn: postgresql://u@h/db
  apply: true
fetch:
  max_retries: 5
  bearer_token_env: O3_TOKEN
metrics:
  backend: pushgateway
  pushgateway_url: http://gw:9091
`

	fromJSON, err := Decode([]byte(js), ".json")
	if err != nil {
		t.Fatalf("Decode(json): %v", err)
	}
	fromYAML, err := Decode([]byte(ym), ".yaml")
	if err != nil {
		t.Fatalf("Decode(yaml): %v", err)
	}
	if !reflect.DeepEqual(fromJSON, fromYAML) {
		t.Fatalf("json and yaml decode differently:\njson=%+v\nyaml=%+v", fromJSON, fromYAML)
	}

	want := Default()
	want.Document = "schema/o3.json"
	want.Dialect = "postgres"
	want.PHIAllowed = true
	want.Lookup = "shared"
	want.Workers = 4
	want.Output = "out/o3.sql"
	want.Storage = Storage{Kind: "postgres", DSN: "postgresql://u@h/db", Apply: true}
	want.Metrics.Backend = "pushgateway"
	want.Metrics.PushgatewayURL = "http://gw:9091"
	want.Fetch.MaxRetries = 5
	want.Fetch.BearerTokenEnv = "O3_TOKEN"
	if !reflect.DeepEqual(fromJSON, want) {
		t.Fatalf("Decode = %+v, want %+v", fromJSON, want)
	}
}

func TestDecode_DefaultsSurvive(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
		ext  string
	}{
		{name: "json partial", doc: `{"dialect": "mssql"}`, ext: ".json"},
		{name: "yaml partial", doc: "dialect: mssql\n", ext: ".yml"},
		{name: "no extension", doc: `{"dialect": "mssql"}`, ext: ""},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Decode([]byte(tt.doc), tt.ext)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if !got.Clean || got.Workers != 1 || got.Lookup != "per_attribute" || got.HistoryUser != "db_creation" {
				t.Fatalf("defaults lost: %+v", got)
			}
			if got.Dialect != "mssql" {
				t.Fatalf("dialect = %q, want mssql", got.Dialect)
			}
		})
	}

	// clean can be switched off explicitly.
	got, err := Decode([]byte(`{"clean": false}`), ".json")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.Clean {
		t.Fatalf("clean = true, want false")
	}

	empty, err := Decode(nil, ".yaml")
	if err != nil {
		t.Fatalf("Decode(empty): %v", err)
	}
	if !reflect.DeepEqual(empty, Default()) {
		t.Fatalf("empty yaml = %+v, want Default()", empty)
	}
}

func TestDecode_Errors(t *testing.T) {
	t.Parallel()

	if _, err := Decode([]byte(`{"dialect": "mssql", "bogus": 1}`), ".json"); err == nil || !strings.Contains(err.Error(), "bogus") {
		t.Fatalf("unknown json field: err = %v", err)
	}
	if _, err := Decode([]byte("bogus: 1\n"), ".yaml"); err == nil {
		t.Fatalf("unknown yaml field: err = nil")
	}
	if _, err := Decode([]byte(`{"workers": "four"}`), ".json"); err == nil {
		t.Fatalf("wrong json type: err = nil")
	}
	if _, err := Decode([]byte(`dialect = "mssql"`), ".toml"); !errors.Is(err, ErrFormat) {
		t.Fatalf("toml: err = %v, want ErrFormat", err)
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "o3ddl.yaml")
	if err := os.WriteFile(path, []byte("document: o3.json\ndialect: mssql\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Document != "o3.json" || cfg.Dialect != "mssql" {
		t.Fatalf("Load = %+v", cfg)
	}

	if _, err := Load(filepath.Join(dir, "missing.json")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Load(missing) err = %v, want os.ErrNotExist", err)
	}
}
