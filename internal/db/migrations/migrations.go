// Package migrations ships the schema of the news table for every supported
// dialect and applies it with goose.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/pressly/goose/v3"
)

const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite3"
)

//go:embed postgres/*.sql sqlite/*.sql
var files embed.FS

type source struct {
	dialect goose.Dialect
	dir     string
}

var sources = map[string]source{
	DialectPostgres: {dialect: goose.DialectPostgres, dir: "postgres"},
	DialectSQLite:   {dialect: goose.DialectSQLite3, dir: "sqlite"},
}

// Up brings the schema to the latest version. It is safe to run on every
// start and from several goroutines: each call builds its own goose provider.
// Applied migrations are reported to logger when it is not nil.
func Up(ctx context.Context, sqldb *sql.DB, dialect string, logger *slog.Logger) error {
	src, ok := sources[dialect]
	if !ok {
		return fmt.Errorf("no migrations for dialect %q", dialect)
	}

	fsys, err := fs.Sub(files, src.dir)
	if err != nil {
		return fmt.Errorf("open %s migrations: %w", src.dir, err)
	}

	provider, err := goose.NewProvider(src.dialect, sqldb, fsys)
	if err != nil {
		return fmt.Errorf("create goose provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	if logger != nil {
		for _, r := range results {
			logger.InfoContext(ctx, "migration applied",
				"dialect", dialect,
				"version", r.Source.Version,
				"path", r.Source.Path,
				"duration", r.Duration,
			)
		}
	}

	return nil
}
