// Package compile runs one schema-to-DDL compilation: read the element
// document, parse it, build the model and generate the script for one
// dialect. Each step is timed and reported through the metrics package.
package compile

import (
	"context"
	"fmt"
	"time"

	"o3ddl/internal/datasource"
	"o3ddl/internal/datasource/file"
	"o3ddl/internal/ddlgen"
	"o3ddl/internal/dialect"
	"o3ddl/internal/metrics"
	"o3ddl/internal/parser"
	jsonparser "o3ddl/internal/parser/json"
	"o3ddl/internal/schema"
)

// DefaultJob labels metrics when Options.Job is empty.
const DefaultJob = "o3ddl"

// Options configure one run.
type Options struct {
	// Clean enables the cleaning pass while building the model.
	Clean bool
	// Dialect is a dialect.Lookup token ("mssql" or "postgres").
	Dialect     string
	PHIAllowed  bool
	Lookup      ddlgen.LookupMode
	Workers     int
	HistoryUser string
	// Job labels emitted metrics.
	Job string
}

// DefaultOptions returns cleaning enabled, per-attribute lookups and a
// single worker for the given dialect.
func DefaultOptions(dialectName string) Options {
	return Options{
		Clean:       true,
		Dialect:     dialectName,
		Lookup:      ddlgen.PerAttribute,
		Workers:     1,
		HistoryUser: ddlgen.DefaultHistoryUser,
		Job:         DefaultJob,
	}
}

// Result is the outcome of a successful run.
type Result struct {
	Model    *schema.Model
	Script   *ddlgen.Script
	Dialect  dialect.Catalog
	Warnings []schema.Warning
	// Steps holds the duration of each completed step, keyed by step name.
	Steps map[string]time.Duration
}

// documentParser decodes element documents read from a Source.
var documentParser parser.Parser = jsonparser.Parser{}

// run carries per-call state so steps can be timed uniformly.
type run struct {
	job   string
	steps map[string]time.Duration
}

func (r *run) step(name string, fn func() error) error {
	start := time.Now()
	err := fn()
	d := time.Since(start)
	metrics.RecordStep(r.job, name, err, d)
	if err == nil {
		r.steps[name] = d
	}
	return err
}

func newRun(opts Options) *run {
	job := opts.Job
	if job == "" {
		job = DefaultJob
	}
	return &run{job: job, steps: map[string]time.Duration{}}
}

// CompileFile compiles the document stored at path.
func CompileFile(ctx context.Context, path string, opts Options) (*Result, error) {
	return CompileSource(ctx, file.NewLocal(path), opts)
}

// CompileSource compiles the document opened from src. The dialect is
// resolved before anything is read.
func CompileSource(ctx context.Context, src datasource.Source, opts Options) (*Result, error) {
	cat, err := dialect.Lookup(opts.Dialect)
	if err != nil {
		return nil, err
	}
	r := newRun(opts)

	var records []schema.Record
	err = r.step("load", func() error {
		rc, err := src.Open(ctx)
		if err != nil {
			return err
		}
		defer rc.Close()
		records, err = documentParser.Parse(rc)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	return r.compile(ctx, cat, records, opts)
}

// Compile compiles an in-memory document.
func Compile(ctx context.Context, doc []byte, opts Options) (*Result, error) {
	cat, err := dialect.Lookup(opts.Dialect)
	if err != nil {
		return nil, err
	}
	r := newRun(opts)

	var records []schema.Record
	err = r.step("load", func() error {
		records, err = jsonparser.ParseDocument(doc)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	return r.compile(ctx, cat, records, opts)
}

func (r *run) compile(ctx context.Context, cat dialect.Catalog, records []schema.Record, opts Options) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		model    *schema.Model
		warnings []schema.Warning
	)
	err := r.step("model", func() error {
		m, ws, err := schema.NewModel(records, schema.BuildOptions{Clean: opts.Clean})
		model, warnings = m, ws
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("model: %w", err)
	}

	gen := ddlgen.New(cat, ddlgen.Options{
		PHIAllowed:  opts.PHIAllowed,
		Lookup:      opts.Lookup,
		Workers:     opts.Workers,
		HistoryUser: opts.HistoryUser,
	})
	var script *ddlgen.Script
	err = r.step("generate", func() error {
		s, ws, err := gen.Generate(ctx, model)
		script = s
		warnings = append(warnings, ws...)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}

	r.recordObjects(model, script, len(warnings))
	return &Result{
		Model:    model,
		Script:   script,
		Dialect:  cat,
		Warnings: warnings,
		Steps:    r.steps,
	}, nil
}

func (r *run) recordObjects(m *schema.Model, s *ddlgen.Script, warnings int) {
	attrs := 0
	for _, ke := range m.KeyElements() {
		attrs += len(ke.Attributes())
	}
	metrics.RecordObjects(r.job, "key_elements", int64(m.Len()))
	metrics.RecordObjects(r.job, "attributes", int64(attrs))
	metrics.RecordObjects(r.job, "tables", int64(s.Count(ddlgen.CreateTable)))
	metrics.RecordObjects(r.job, "indexes", int64(s.Count(ddlgen.CreateIndex)))
	metrics.RecordObjects(r.job, "inserts", int64(s.Count(ddlgen.Insert)))
	metrics.RecordObjects(r.job, "foreign_keys", int64(s.Count(ddlgen.AlterTable)))
	metrics.RecordObjects(r.job, "warnings", int64(warnings))
}
