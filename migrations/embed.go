// Package migrations holds the SQL migrations for the PostgreSQL session
// store.
package migrations

import "embed"

// FS contains every migration file.
//
//go:embed *.sql
var FS embed.FS
