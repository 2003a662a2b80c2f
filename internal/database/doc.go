// Package database provides SQLite-based storage for accessibility checks.
//
// This package implements the CheckDB, which stores:
//   - Checks (the audited HTML snapshot plus metadata)
//   - Domains (shared per-hostname option stores)
//   - Check and domain options as flat key/value pairs
//   - Completed rule results, one row per check and rule
//
// Design decision: We use SQLite (via modernc.org/sqlite) instead of other
// databases because:
// 1. No external dependencies - the database is a single file
// 2. CGO-free implementation allows easy cross-compilation
// 3. Sufficient performance for our use case
// 4. WAL mode provides good concurrent read performance
package database
