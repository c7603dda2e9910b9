// Package migrations embeds the goose migrations applied to the client's
// local SQLite database.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
