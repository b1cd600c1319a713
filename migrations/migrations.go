// Package migrations embeds the SQL migration files so they can be applied at
// startup via golang-migrate's iofs source.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
