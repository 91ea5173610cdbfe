// Package all wires all built-in storage backends into the storage factory.
//
// This package exists purely for side effects: importing it (even as a blank
// import) runs the init functions of each concrete backend, which register
// their factories with the storage package. After the import the following
// kinds are available to storage.New:
//
//   - "mssql"    (o3ddl/internal/storage/mssql)
//   - "postgres" (o3ddl/internal/storage/postgres)
//
// Typical usage (in cmd/o3ddl/main.go):
//
//	import _ "o3ddl/internal/storage/all"
//
//	repo, err := storage.New(ctx, storage.Config{Kind: cfg.Storage.Kind, DSN: dsn})
//	if err != nil { ... }
//	defer repo.Close()
//	n, err := storage.Apply(ctx, repo, res.Script, cfg.Metrics.Job)
package all

import (
	_ "o3ddl/internal/storage/mssql"
	_ "o3ddl/internal/storage/postgres"
)
