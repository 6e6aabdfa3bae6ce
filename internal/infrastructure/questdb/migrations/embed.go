// Package migrations holds the QuestDB schema of the snapshot sink.
package migrations

import "embed"

// FS contains the up and down migration files.
//
//go:embed *.sql
var FS embed.FS
