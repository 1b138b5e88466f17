// Package migrations embeds the goose SQL migrations of the postgres
// snapshot backend.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
