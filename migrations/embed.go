package migrations

import "embed"

// Files holds the NNN_name.sql schema steps applied by db.OpenSQLite.
//
//go:embed *.sql
var Files embed.FS
