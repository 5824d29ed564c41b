package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/pathrecall/ent/migrate"
)

// migrateSchema creates the tables declared under ent/schema. Deleting a
// path cascades to its items and from there to progress and review events.
func migrateSchema(ctx context.Context, db *sql.DB) error {
	drv := entsql.OpenDB(dialect.SQLite, db)
	if err := migrate.NewSchema(drv).Create(ctx); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// sqliteDSN turns a file path into a URI that enables foreign keys on every
// pooled connection. The schema migrator refuses to run without them.
func sqliteDSN(dsn string) string {
	if !strings.HasPrefix(dsn, "file:") {
		dsn = "file:" + dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)"
}
