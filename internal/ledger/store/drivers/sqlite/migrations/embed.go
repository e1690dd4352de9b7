// Package migrations embeds the SQL migration files into the binary so the
// store can migrate itself without shipping loose files.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
