package config

import (
	"fmt"
	"slices"
	"strings"

	"o3ddl/internal/dialect"
)

// IssueSeverity represents the severity of a configuration issue.
type IssueSeverity string

const (
	// SeverityError indicates a configuration error that should block execution.
	SeverityError IssueSeverity = "error"
	// SeverityWarning indicates a finding that is surfaced but does not block.
	SeverityWarning IssueSeverity = "warning"
)

// Issue describes a single validation finding.
//
// Path is a dotted path into the config (e.g. "storage.kind",
// "metrics.pushgateway_url"). Message is human-readable.
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

// Error implements the error interface so an Issue can be treated as a single
// error in contexts that expect error.
func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

// HasErrors reports whether any issue has SeverityError.
func HasErrors(issues []Issue) bool {
	for _, iss := range issues {
		if iss.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Validate performs static validation of a Config. It does not mutate c;
// callers decide whether warnings are fatal.
func Validate(c Config) []Issue {
	var issues []Issue

	if strings.TrimSpace(c.Document) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "document",
			Message:  "document must not be empty; it names the element document to compile",
		})
	}
	if !c.Clean {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "clean",
			Message:  "cleaning is disabled; declared value data types are used as written",
		})
	}
	issues = append(issues, validateDialect(c.Dialect)...)
	issues = append(issues, validateGeneration(c)...)
	issues = append(issues, validateFetch(c.Fetch, c.Document)...)
	issues = append(issues, validateStorage(c.Storage, c.Dialect)...)
	issues = append(issues, validateMetrics(c.Metrics)...)

	return issues
}

func validateDialect(d string) []Issue {
	d = strings.TrimSpace(d)
	if d == "" {
		return []Issue{{
			Severity: SeverityError,
			Path:     "dialect",
			Message:  fmt.Sprintf("dialect must not be empty (supported: %s)", strings.Join(dialect.Kinds(), ", ")),
		}}
	}
	if !slices.Contains(dialect.Kinds(), d) {
		return []Issue{{
			Severity: SeverityError,
			Path:     "dialect",
			Message:  fmt.Sprintf("unknown dialect %q (supported: %s)", d, strings.Join(dialect.Kinds(), ", ")),
		}}
	}
	return nil
}

func validateGeneration(c Config) []Issue {
	var issues []Issue

	switch strings.TrimSpace(c.Lookup) {
	case "", "per_attribute", "shared":
	default:
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "lookup",
			Message:  fmt.Sprintf("unknown lookup mode %q; want per_attribute or shared", c.Lookup),
		})
	}

	switch {
	case c.Workers < 0:
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "workers",
			Message:  "workers must not be negative",
		})
	case c.Workers == 0:
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "workers",
			Message:  "workers=0; tables are generated sequentially",
		})
	}

	if strings.TrimSpace(c.HistoryUser) == "" {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "history_user",
			Message:  "history_user is empty; inserts use db_creation",
		})
	}
	return issues
}

func validateFetch(f Fetch, document string) []Issue {
	var issues []Issue
	if f.TimeoutSeconds < 0 {
		issues = append(issues, Issue{Severity: SeverityError, Path: "fetch.timeout_seconds", Message: "fetch.timeout_seconds must be >= 0"})
	}
	if f.MaxRetries < 0 {
		issues = append(issues, Issue{Severity: SeverityError, Path: "fetch.max_retries", Message: "fetch.max_retries must be >= 0"})
	}
	if f.MaxBytes < 0 {
		issues = append(issues, Issue{Severity: SeverityError, Path: "fetch.max_bytes", Message: "fetch.max_bytes must be >= 0"})
	}
	l := strings.ToLower(strings.TrimSpace(document))
	if f.InsecureSkipVerify && strings.HasPrefix(l, "https://") {
		issues = append(issues, Issue{Severity: SeverityWarning, Path: "fetch.insecure_skip_verify", Message: "TLS certificate verification is disabled for the document host"})
	}
	return issues
}

func validateStorage(s Storage, d string) []Issue {
	if !s.Apply {
		return nil
	}
	var issues []Issue

	kind := strings.TrimSpace(s.Kind)
	switch {
	case kind == "":
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "storage.kind",
			Message:  "storage.kind must not be empty when storage.apply is set",
		})
	case !slices.Contains(dialect.Kinds(), kind):
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "storage.kind",
			Message:  fmt.Sprintf("unknown storage kind %q; ensure a matching backend is registered", kind),
		})
	case kind != strings.TrimSpace(d):
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "storage.kind",
			Message:  fmt.Sprintf("storage.kind %q does not match dialect %q; the script would not run", kind, d),
		})
	}

	if strings.TrimSpace(s.DSN) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "storage.dsn",
			Message:  "storage.dsn must not be empty when storage.apply is set (or set O3DDL_DSN)",
		})
	}
	return issues
}

func validateMetrics(m Metrics) []Issue {
	var issues []Issue

	switch strings.TrimSpace(m.Backend) {
	case "", "none":
		return nil
	case "pushgateway":
		if strings.TrimSpace(m.PushgatewayURL) == "" {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     "metrics.pushgateway_url",
				Message:  "pushgateway backend requires pushgateway_url",
			})
		}
	case "datadog":
		if strings.TrimSpace(m.DatadogAddr) == "" {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     "metrics.datadog_addr",
				Message:  "datadog backend requires datadog_addr",
			})
		}
	default:
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "metrics.backend",
			Message:  fmt.Sprintf("unknown metrics backend %q; metrics disabled", m.Backend),
		})
	}

	if strings.TrimSpace(m.Job) == "" {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "metrics.job",
			Message:  "metrics.job is empty; metrics are labeled o3ddl",
		})
	}
	return issues
}
