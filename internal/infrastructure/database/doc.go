// Package database manages the SQLite database holding roadmctl's
// reconciliation run history.
//
// It wraps database/sql with lifecycle management (directory
// creation, WAL mode, busy timeout, restricted file permissions) and
// applies embedded SQL migrations at startup. Migration files are
// registered by the top-level migrations package via MigrationsFS.
package database
