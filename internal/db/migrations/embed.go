// Package migrations embeds the SQL schema migrations applied by goose.
// The statements stay within the subset shared by PostgreSQL, MySQL and SQLite.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
