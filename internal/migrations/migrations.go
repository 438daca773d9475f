// Package migrations embeds the goose SQL migrations for the record store.
// The statements are kept portable between SQLite and PostgreSQL.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
