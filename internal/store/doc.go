// Package store provides the SQLite-backed catalog of saved queries.
//
// Each row holds the exact wire JSON of a rendered search request under a
// unique name:
//   - id: UUIDv7, stable for the life of the name
//   - fingerprint: wire.Fingerprint of the body, domain querydsl/request/v1
//   - revision: starts at 1 and increments only when the fingerprint changes
//
// Saving identical bytes under the same name is a no-op, so re-running a
// save over unchanged documents leaves revisions untouched.
//
// # Deterministic Query Results
//
// List results are ordered by name COLLATE BINARY so output is identical
// across platforms and locales.
//
// # Schema
//
// The schema is a numbered list of migrations tracked in PRAGMA
// user_version; Open applies the pending ones, one transaction each.
// A file with a newer version, or whose saved_queries table lacks a
// catalog column, fails with ErrSchemaMismatch.
//
// Connections run in WAL mode with synchronous=NORMAL and a 5 second busy
// timeout, set through the driver DSN.
package store
