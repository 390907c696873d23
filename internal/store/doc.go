// Package store provides read-only access to the SQLite identity database.
//
// The lookup tool never writes. The database is opened with
//
//   - mode=ro URI parameter: a missing file is an open error, never created
//   - query_only=ON: any write statement fails even if the file is writable
//   - busy_timeout=5000: wait for locks held by an ingesting writer
//   - a single connection, used for the whole invocation
//
// Query results are collected into result.Set values by Collect: every
// column of every row becomes text, NULL becomes "".
package store
