package paywebhooks

import (
	"embed"
	"io/fs"
)

// migrationsFS holds the delivery ledger and event archive schema for
// postgres, with sqlite alternatives under data/sql/migrations/sqlite.
//
//go:embed data/sql/migrations/*.sql data/sql/migrations/sqlite/*.sql
var migrationsFS embed.FS

// GetMigrationsFS returns the full embedded migration tree.
func GetMigrationsFS() fs.FS {
	return migrationsFS
}

// GetCoreMigrationsFS returns the schema required by store/sql.
func GetCoreMigrationsFS() fs.FS {
	return migrationsFS
}
