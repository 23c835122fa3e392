// Package postgresengine implements the Postgres-backed lending journal.
//
// The engine supports three database access libraries behind one interface:
// pgxpool (recommended), database/sql (e.g. with lib/pq), and sqlx. Appends
// are guarded by a CTE that compares the stream's current max sequence number
// against the value the caller observed when querying, so conflicting
// concurrent writers are detected instead of silently interleaved.
package postgresengine
