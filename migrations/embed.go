// Package migrations embeds the SQL migration files into the binary
// so roadmctl can migrate its run-history database without the files
// being present on disk.
package migrations

import (
	"embed"

	"github.com/nerrad567/roadm-core/internal/infrastructure/database"
)

//go:embed *.sql
var migrationsFS embed.FS

func init() {
	database.MigrationsFS = migrationsFS
	database.MigrationsDir = "."
}
