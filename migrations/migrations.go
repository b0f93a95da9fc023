// Package migrations embeds the SQL schema migrations applied at server
// startup via goose.
package migrations

import "embed"

// FS holds the embedded migration files.
//
//go:embed *.sql
var FS embed.FS
