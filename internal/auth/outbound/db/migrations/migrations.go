// Package migrations embeds the goose migrations of the accounts schema.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
