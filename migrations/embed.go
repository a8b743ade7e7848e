// Package migrations embebe los .sql de goose.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
