// Package migrations embeds the MySQL schema migration files.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
