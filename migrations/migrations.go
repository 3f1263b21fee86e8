// Package migrations embeds the versioned schema so the binary can apply it
// on startup.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
