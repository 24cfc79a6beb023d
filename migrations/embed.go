// Package migrations holds the schema of the local sample warehouse.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
