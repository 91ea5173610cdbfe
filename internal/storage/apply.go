package storage

import (
	"context"
	"fmt"
	"log"
	"time"

	"o3ddl/internal/ddlgen"
	"o3ddl/internal/metrics"
)

// Apply runs script against repo in one transaction. job labels the
// "apply" step metrics.
func Apply(ctx context.Context, repo Repository, script *ddlgen.Script, job string) (int, error) {
	stmts := script.SQL()
	if len(stmts) == 0 {
		return 0, nil
	}

	start := time.Now()
	n, err := repo.ExecScript(ctx, stmts)
	metrics.RecordStep(job, "apply", err, time.Since(start))
	if err != nil {
		return n, fmt.Errorf("apply: %w", err)
	}
	metrics.RecordStatements(job, int64(n))
	log.Printf("apply: executed %d statements in %s", n, time.Since(start).Truncate(time.Millisecond))
	return n, nil
}
