// Package migrations embeds the SQL schema migrations so they can be applied
// at startup without shipping loose files alongside the binary.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
