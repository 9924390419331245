// Package migrations holds the numbered schema scripts for the progress database.
package migrations

import "embed"

// FS holds NNN_name.up.sql and NNN_name.down.sql pairs, applied in order by sqlite.Store.
//
//go:embed *.sql
var FS embed.FS
