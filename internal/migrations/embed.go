// Package migrations embeds the SQL schema migrations applied by the
// migrate CLI subcommand.
package migrations

import "embed"

//go:embed sql/*.sql
var FS embed.FS
