// Package config defines the run configuration of the o3ddl compiler. A
// configuration file is JSON or YAML (selected by file extension); field
// names are the same in both.
//
// Example (JSON):
//
//	{
//	  "document":     "schema/o3_elements.json",
//	  "dialect":      "mssql",
//	  "phi_allowed":  true,
//	  "lookup":       "per_attribute",
//	  "workers":      4,
//	  "output":       "out/o3_mssql.sql",
//	  "storage":      { "kind": "mssql", "dsn": "sqlserver://...", "apply": false },
//	  "metrics":      { "backend": "pushgateway", "job": "o3ddl", "pushgateway_url": "http://localhost:9091" }
//	}
//
// Missing fields keep the values from Default.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the top-level object decoded from a configuration file.
type Config struct {
	// Document is the path or http(s) URL of the O3 element document.
	Document string `json:"document" yaml:"document"`

	// Output is where the script is written; empty means stdout.
	Output string `json:"output" yaml:"output"`

	// Clean enables the cleaning pass (default true).
	Clean bool `json:"clean" yaml:"clean"`

	// Dialect selects the target SQL dialect: "mssql" or "postgres".
	Dialect string `json:"dialect" yaml:"dialect"`

	// PHIAllowed states whether the target system stores protected health
	// information; it changes several null policies.
	PHIAllowed bool `json:"phi_allowed" yaml:"phi_allowed"`

	// Lookup is "per_attribute" (default) or "shared".
	Lookup string `json:"lookup" yaml:"lookup"`

	// Workers bounds concurrent table generation (default 1).
	Workers int `json:"workers" yaml:"workers"`

	// HistoryUser is written to HistoryUser by generated inserts.
	HistoryUser string `json:"history_user" yaml:"history_user"`

	Fetch   Fetch   `json:"fetch" yaml:"fetch"`
	Storage Storage `json:"storage" yaml:"storage"`
	Metrics Metrics `json:"metrics" yaml:"metrics"`
}

// Fetch tunes the HTTP client used when Document is a URL.
type Fetch struct {
	TimeoutSeconds     int   `json:"timeout_seconds" yaml:"timeout_seconds"`
	MaxRetries         int   `json:"max_retries" yaml:"max_retries"`
	MaxBytes           int64 `json:"max_bytes" yaml:"max_bytes"`
	InsecureSkipVerify bool  `json:"insecure_skip_verify" yaml:"insecure_skip_verify"`

	// BearerTokenEnv names an environment variable holding a bearer token
	// for the document host.
	BearerTokenEnv string `json:"bearer_token_env" yaml:"bearer_token_env"`
}

// Storage configures the optional apply step.
type Storage struct {
	// Kind selects the database backend; it must match Dialect when Apply is set.
	Kind string `json:"kind" yaml:"kind"`

	// DSN is the connection string. When empty, the CLI falls back to the
	// O3DDL_DSN environment variable.
	DSN string `json:"dsn" yaml:"dsn"`

	// Apply executes the generated script against the database.
	Apply bool `json:"apply" yaml:"apply"`
}

// Metrics selects and configures the metrics backend.
type Metrics struct {
	// Backend is "none" (default), "pushgateway" or "datadog".
	Backend        string `json:"backend" yaml:"backend"`
	Job            string `json:"job" yaml:"job"`
	PushgatewayURL string `json:"pushgateway_url" yaml:"pushgateway_url"`
	DatadogAddr    string `json:"datadog_addr" yaml:"datadog_addr"`
}

// Default returns the configuration used for fields a file leaves out.
func Default() Config {
	return Config{
		Clean:       true,
		Lookup:      "per_attribute",
		Workers:     1,
		HistoryUser: "db_creation",
		Metrics: Metrics{
			Backend: "none",
			Job:     "o3ddl",
		},
		Fetch: Fetch{
			TimeoutSeconds: 30,
			MaxRetries:     3,
		},
	}
}

// ErrFormat marks a configuration file with an unsupported extension.
var ErrFormat = errors.New("unsupported config format")

// Load reads path and decodes it over Default. Files ending in .yaml or
// .yml are YAML, .json (or no extension) JSON. Unknown fields are rejected;
// an empty file yields Default.
func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Decode(b, filepath.Ext(path))
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Decode decodes b over Default. ext is a file extension such as ".json"
// or ".yaml".
func Decode(b []byte, ext string) (Config, error) {
	cfg := Default()
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(b))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return Config{}, fmt.Errorf("decode yaml: %w", err)
		}
	case ".json", "":
		dec := json.NewDecoder(bytes.NewReader(b))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return Config{}, fmt.Errorf("decode json: %w", err)
		}
	default:
		return Config{}, fmt.Errorf("%w %q (want .json, .yaml or .yml)", ErrFormat, ext)
	}
	return cfg, nil
}
