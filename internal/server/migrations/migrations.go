// Package migrations embeds the SQL schema applied at startup by goose.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
