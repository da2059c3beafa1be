// Package postgresengine provides the PostgreSQL-backed circulation store.
//
// The store supports multiple database drivers (pgx, sql.DB, sqlx) through
// internal adapters and builds all SQL with goqu as fully interpolated
// statements. Lifecycle commands run inside InTransaction, which hands the
// caller a UnitOfWork with row-locking reads and guarded updates; the audit
// log is appended in the same transaction as the state it describes.
package postgresengine
