// Package history persists one row per post-processing run in a SQLite
// ledger so operators can review past outcomes.
//
// The schema is versioned. Opening a database written by an incompatible
// version fails with ErrSchemaMismatch rather than migrating in place; the
// ledger is disposable and can simply be deleted.
package history
