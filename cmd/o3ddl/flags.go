package main

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"o3ddl/internal/config"
	"o3ddl/internal/dialect"
)

// dsnEnv is consulted when neither the config file nor -dsn sets a DSN.
const dsnEnv = "O3DDL_DSN"

// cliFlags are the process-level switches that do not live in config.Config.
type cliFlags struct {
	configPath string
	envFile    string
	validate   bool
	verbose    bool
}

// parseArgs builds the effective configuration:
//  1. config file (-config), or config.Default() when none is given,
//  2. flags explicitly present in args override file values,
//  3. an empty storage DSN falls back to getenv(O3DDL_DSN).
//
// It touches neither os.Args nor the process environment, so tests pass a
// private FlagSet, a map-backed getenv and a synthetic arg slice.
func parseArgs(fs *flag.FlagSet, getenv func(string) string, args []string) (config.Config, cliFlags, error) {
	var (
		cli cliFlags
		ov  config.Config
	)
	d := config.Default()

	fs.StringVar(&cli.configPath, "config", "", "run config file (.json, .yaml or .yml)")
	fs.StringVar(&cli.envFile, "env", ".env", "dotenv file loaded before reading "+dsnEnv+" (skipped when missing)")
	fs.BoolVar(&cli.validate, "validate", false, "validate the configuration and exit")
	fs.BoolVar(&cli.verbose, "v", false, "enable verbose logs")

	fs.StringVar(&ov.Document, "document", "", "O3 element document (JSON)")
	fs.StringVar(&ov.Output, "o", "", "output file for the script (default stdout)")
	fs.StringVar(&ov.Dialect, "dialect", "", "target dialect: "+strings.Join(dialect.Kinds(), ", "))
	fs.BoolVar(&ov.Clean, "clean", d.Clean, "run the cleaning pass")
	fs.BoolVar(&ov.PHIAllowed, "phi", d.PHIAllowed, "target system stores PHI")
	fs.StringVar(&ov.Lookup, "lookup", d.Lookup, "enumeration storage: per_attribute or shared")
	fs.IntVar(&ov.Workers, "workers", d.Workers, "concurrent table generation")
	fs.StringVar(&ov.HistoryUser, "history-user", d.HistoryUser, "HistoryUser value of generated inserts")
	fs.BoolVar(&ov.Storage.Apply, "apply", false, "execute the script against the database")
	fs.StringVar(&ov.Storage.Kind, "storage", "", "database backend for -apply (defaults to the dialect)")
	fs.StringVar(&ov.Storage.DSN, "dsn", "", "database DSN for -apply (falls back to env "+dsnEnv+")")
	fs.StringVar(&ov.Metrics.Backend, "metrics-backend", d.Metrics.Backend, "metrics backend: none, pushgateway, datadog")
	fs.StringVar(&ov.Metrics.PushgatewayURL, "pushgateway-url", "", "Pushgateway base URL")
	fs.StringVar(&ov.Metrics.DatadogAddr, "datadog-addr", "", "DogStatsD address")
	fs.StringVar(&ov.Metrics.Job, "job", d.Metrics.Job, "metrics job label")

	if err := fs.Parse(args); err != nil {
		return config.Config{}, cli, err
	}
	if fs.NArg() > 0 {
		return config.Config{}, cli, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	cfg := d
	if cli.configPath != "" {
		var err error
		if cfg, err = config.Load(cli.configPath); err != nil {
			return config.Config{}, cli, err
		}
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "document":
			cfg.Document = ov.Document
		case "o":
			cfg.Output = ov.Output
		case "dialect":
			cfg.Dialect = ov.Dialect
		case "clean":
			cfg.Clean = ov.Clean
		case "phi":
			cfg.PHIAllowed = ov.PHIAllowed
		case "lookup":
			cfg.Lookup = ov.Lookup
		case "workers":
			cfg.Workers = ov.Workers
		case "history-user":
			cfg.HistoryUser = ov.HistoryUser
		case "apply":
			cfg.Storage.Apply = ov.Storage.Apply
		case "storage":
			cfg.Storage.Kind = ov.Storage.Kind
		case "dsn":
			cfg.Storage.DSN = ov.Storage.DSN
		case "metrics-backend":
			cfg.Metrics.Backend = ov.Metrics.Backend
		case "pushgateway-url":
			cfg.Metrics.PushgatewayURL = ov.Metrics.PushgatewayURL
		case "datadog-addr":
			cfg.Metrics.DatadogAddr = ov.Metrics.DatadogAddr
		case "job":
			cfg.Metrics.Job = ov.Metrics.Job
		}
	})

	if cfg.Storage.Apply && cfg.Storage.Kind == "" {
		cfg.Storage.Kind = cfg.Dialect
	}
	if cfg.Storage.DSN == "" {
		cfg.Storage.DSN = getenv(dsnEnv)
	}
	return cfg, cli, nil
}

// printIssues writes one line per issue and reports whether any is an error.
func printIssues(w io.Writer, issues []config.Issue) bool {
	for _, iss := range issues {
		fmt.Fprintf(w, "%s: %s: %s\n", iss.Severity, iss.Path, iss.Message)
	}
	return config.HasErrors(issues)
}
