package db

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx"
	"github.com/jackc/pgx/stdlib"

	"github.com/daniilsolovey/newsdesk/internal/db/migrations"
)

// Migrate creates the news table if it does not exist yet.
func Migrate(ctx context.Context, databaseURL string, logger *slog.Logger) error {
	config, err := pgx.ParseConnectionString(databaseURL)
	if err != nil {
		return fmt.Errorf("parse connection string: %w", err)
	}

	sqldb := stdlib.OpenDB(config)
	defer sqldb.Close()

	if err := sqldb.PingContext(ctx); err != nil {
		return fmt.Errorf("ping db: %w", err)
	}

	return migrations.Up(ctx, sqldb, migrations.DialectPostgres, logger)
}
