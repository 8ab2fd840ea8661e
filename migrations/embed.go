// Package migrations holds the schema as ordered *.up.sql files.
package migrations

import "embed"

// FS contains every migration file.
//
//go:embed *.up.sql
var FS embed.FS
