// Package postgres stores encoded vectors as bytea rows in PostgreSQL.
//
// Each blob is one row keyed by name:
//
//	CREATE TABLE IF NOT EXISTS plwah_blobs (
//	    name TEXT PRIMARY KEY,
//	    data BYTEA NOT NULL
//	)
//
// Store.EnsureSchema creates the table when it does not exist.
package postgres
