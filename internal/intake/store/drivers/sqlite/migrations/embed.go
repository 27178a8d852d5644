package migrations

import "embed"

// Migrations holds the SQL files applied by golang-migrate at startup.
//
//go:embed *.sql
var Migrations embed.FS
