// Package migrations holds the SQL schema migrations for each database backend.
package migrations

import "embed"

// FS contains sqlite/NNN_name.sql and postgres/NNN_name.sql migration files
//
//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS
