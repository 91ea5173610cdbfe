// Package metrics provides a small, backend-agnostic abstraction for recording
// operational metrics from a compile run.
//
// The package exposes a narrow interface (Backend) focused on counters and
// timing data. A global, pluggable backend defaults to a no-op
// implementation, so metrics are always safe to call even when no real
// backend is configured. Concrete systems (Prometheus Pushgateway, Datadog)
// live in subpackages so the compiler core depends only on this package.
package metrics

import "time"

// Metric names emitted by the helpers below.
const (
	StepTotal           = "o3ddl_step_total"
	StepDurationSeconds = "o3ddl_step_duration_seconds"
	ObjectsTotal        = "o3ddl_objects_total"
	StatementsTotal     = "o3ddl_statements_total"
)

// Labels are string key/value pairs attached to a metric.
type Labels map[string]string

// Backend is the minimal interface for metrics backends.
type Backend interface {
	// IncCounter increments a counter by delta.
	IncCounter(name string, delta float64, labels Labels)
	// ObserveHistogram records a value in a latency/duration style metric.
	ObserveHistogram(name string, value float64, labels Labels)
	// Flush pushes or flushes metrics, if the backend needs it (e.g. Pushgateway).
	Flush() error
}

// nopBackend is used by default so metrics are optional.
type nopBackend struct{}

func (nopBackend) IncCounter(name string, delta float64, labels Labels)       {}
func (nopBackend) ObserveHistogram(name string, value float64, labels Labels) {}
func (nopBackend) Flush() error                                               { return nil }

var backend Backend = nopBackend{}

// SetBackend installs a concrete backend. Passing nil keeps the existing backend.
func SetBackend(b Backend) {
	if b == nil {
		return
	}
	backend = b
}

// Flush delegates to the current backend.
func Flush() error {
	return backend.Flush()
}

// RecordStep measures latency and success/failure of one compile step
// (load, parse, model, generate, apply).
func RecordStep(job, step string, err error, d time.Duration) {
	status := "success"
	if err != nil {
		status = "failure"
	}

	lbls := Labels{
		"job":    job,
		"step":   step,
		"status": status,
	}

	backend.IncCounter(StepTotal, 1, lbls)
	backend.ObserveHistogram(StepDurationSeconds, d.Seconds(), lbls)
}

// RecordObjects increments a model/script object counter for the given job
// and kind.
//
// Typical kinds:
//   - "key_elements"
//   - "attributes"
//   - "tables"
//   - "inserts"
//   - "foreign_keys"
//   - "warnings"
func RecordObjects(job, kind string, delta int64) {
	if delta <= 0 {
		return
	}
	backend.IncCounter(ObjectsTotal, float64(delta), Labels{
		"job":  job,
		"kind": kind,
	})
}

// RecordStatements increments the number of statements executed against a
// live database.
func RecordStatements(job string, delta int64) {
	if delta <= 0 {
		return
	}
	backend.IncCounter(StatementsTotal, float64(delta), Labels{
		"job": job,
	})
}
