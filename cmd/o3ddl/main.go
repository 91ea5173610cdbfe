// Command o3ddl compiles an O3 element document into a SQL DDL script for
// SQL Server or Postgres, and optionally applies it to a database.
//
//	o3ddl -document o3.json -dialect mssql -phi -o o3_mssql.sql
//	o3ddl -config o3ddl.yaml -apply -v
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"o3ddl/internal/compile"
	"o3ddl/internal/config"
	"o3ddl/internal/datasource"
	"o3ddl/internal/datasource/file"
	"o3ddl/internal/datasource/httpds"
	"o3ddl/internal/ddlgen"
	"o3ddl/internal/metrics"
	"o3ddl/internal/metrics/datadog"
	"o3ddl/internal/metrics/prompush"
	"o3ddl/internal/storage"

	// register all backends with the storage factory.
	_ "o3ddl/internal/storage/all"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	flags := flag.NewFlagSet("o3ddl", flag.ContinueOnError)
	code := run(ctx, flags, os.Args[1:], os.Getenv, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run is the whole CLI behind main. It returns the process exit code:
// 0 on success, 1 on a failed run, 2 on invalid usage or configuration.
func run(ctx context.Context, flags *flag.FlagSet, args []string, getenv func(string) string, stdout, stderr io.Writer) int {
	log.SetOutput(stderr)
	log.SetFlags(0)

	flags.SetOutput(stderr)
	// A dotenv file may seed O3DDL_DSN, so it is loaded before the env is read.
	if err := loadEnvFile(envFileArg(args)); err != nil {
		log.Printf("env: %v", err)
		return 2
	}

	cfg, cli, err := parseArgs(flags, getenv, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		log.Printf("%v", err)
		return 2
	}

	if printIssues(stderr, config.Validate(cfg)) {
		log.Printf("configuration is invalid")
		return 2
	}
	if cli.validate {
		log.Printf("configuration is valid")
		return 0
	}

	flush := setupMetrics(cfg.Metrics, cli.verbose)
	defer flush()

	if err := compileAndWrite(ctx, cfg, documentSource(cfg, getenv), cli.verbose, stdout); err != nil {
		log.Printf("%v", err)
		return 1
	}
	return 0
}

// envFileArg returns the value of -env in args, or ".env".
func envFileArg(args []string) string {
	path := ".env"
	for i, a := range args {
		a = strings.TrimPrefix(a, "-")
		a = strings.TrimPrefix(a, "-")
		switch {
		case a == "env" && i+1 < len(args):
			path = args[i+1]
		case strings.HasPrefix(a, "env="):
			path = strings.TrimPrefix(a, "env=")
		}
	}
	return path
}

// loadEnvFile loads path into the process environment without overriding
// variables that are already set. A missing file is not an error.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return godotenv.Load(path)
}

// documentSource picks the HTTP source for http(s) documents and the local
// file source otherwise.
func documentSource(cfg config.Config, getenv func(string) string) datasource.Source {
	if !httpds.IsURL(cfg.Document) {
		return file.NewLocal(cfg.Document)
	}
	f := cfg.Fetch
	hc := httpds.Config{
		Timeout:            time.Duration(f.TimeoutSeconds) * time.Second,
		MaxRetries:         f.MaxRetries,
		InsecureSkipVerify: f.InsecureSkipVerify,
	}
	if f.BearerTokenEnv != "" {
		if tok := getenv(f.BearerTokenEnv); tok != "" {
			hc.Headers = http.Header{"Authorization": {"Bearer " + tok}}
		}
	}
	return httpds.NewSource(httpds.NewClient(hc), strings.TrimSpace(cfg.Document), f.MaxBytes)
}

func compileAndWrite(ctx context.Context, cfg config.Config, src datasource.Source, verbose bool, stdout io.Writer) error {
	lookup, err := ddlgen.ParseLookupMode(cfg.Lookup)
	if err != nil {
		return err
	}
	opts := compile.Options{
		Clean:       cfg.Clean,
		Dialect:     cfg.Dialect,
		PHIAllowed:  cfg.PHIAllowed,
		Lookup:      lookup,
		Workers:     cfg.Workers,
		HistoryUser: cfg.HistoryUser,
		Job:         cfg.Metrics.Job,
	}

	start := time.Now()
	if verbose {
		log.Printf("compile: document=%s dialect=%s phi=%v lookup=%s workers=%d",
			cfg.Document, cfg.Dialect, cfg.PHIAllowed, lookup, cfg.Workers)
	}
	res, err := compile.CompileSource(ctx, src, opts)
	if err != nil {
		return err
	}
	for _, w := range res.Warnings {
		log.Printf("warning: %s", w)
	}

	if err := writeScript(cfg.Output, res.Script, stdout); err != nil {
		return err
	}

	if verbose {
		logSummary(res, time.Since(start))
	}

	if !cfg.Storage.Apply {
		return nil
	}
	repo, err := storage.New(ctx, storage.Config{Kind: cfg.Storage.Kind, DSN: cfg.Storage.DSN})
	if err != nil {
		return fmt.Errorf("apply: %w", err)
	}
	defer repo.Close()
	_, err = storage.Apply(ctx, repo, res.Script, cfg.Metrics.Job)
	return err
}

// writeScript writes to path (creating parent directories) or to stdout
// when path is empty.
func writeScript(path string, s *ddlgen.Script, stdout io.Writer) error {
	text := s.String()
	if path == "" {
		_, err := io.WriteString(stdout, text)
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("output: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("output: %w", err)
	}
	return nil
}

func logSummary(res *compile.Result, total time.Duration) {
	s := res.Script
	log.Printf("generate: key_elements=%d tables=%d indexes=%d inserts=%d foreign_keys=%d warnings=%d",
		res.Model.Len(), s.Count(ddlgen.CreateTable), s.Count(ddlgen.CreateIndex),
		s.Count(ddlgen.Insert), s.Count(ddlgen.AlterTable), len(res.Warnings))

	steps := make([]string, 0, len(res.Steps))
	for name := range res.Steps {
		steps = append(steps, name)
	}
	sort.Strings(steps)
	for _, name := range steps {
		log.Printf("step %s: %s", name, res.Steps[name].Truncate(time.Microsecond))
	}
	log.Printf("script fingerprint=%016x dialect=%s completed in %s",
		s.Fingerprint(), res.Dialect.Name(), total.Truncate(time.Millisecond))
}

// setupMetrics installs the configured backend and returns its flush
// function. Backend failures only disable metrics.
func setupMetrics(m config.Metrics, verbose bool) func() {
	var (
		b   metrics.Backend
		err error
	)
	switch m.Backend {
	case "pushgateway":
		b, err = prompush.NewBackend(m.Job, m.PushgatewayURL)
	case "datadog":
		b, err = datadog.NewBackend(datadog.Config{Addr: m.DatadogAddr, Namespace: "o3ddl."})
	case "", "none":
		if verbose {
			log.Printf("metrics: disabled")
		}
		return func() {}
	default:
		log.Printf("metrics: unknown backend %q; metrics disabled", m.Backend)
		return func() {}
	}
	if err != nil {
		log.Printf("metrics: failed to init %s backend: %v; using nop", m.Backend, err)
		return func() {}
	}

	if verbose {
		log.Printf("metrics: backend=%s job=%s", m.Backend, m.Job)
	}
	metrics.SetBackend(b)
	return func() {
		if err := metrics.Flush(); err != nil {
			log.Printf("metrics: flush error: %v", err)
		}
	}
}
