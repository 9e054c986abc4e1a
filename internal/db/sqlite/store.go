package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/daniilsolovey/newsdesk/internal/db"
	"github.com/daniilsolovey/newsdesk/internal/db/migrations"
)

const newsColumns = `id, title, content, imageUrl`

// Store provides SQLite-backed persistence for news.
type Store struct {
	sqlDB *sql.DB
}

// Open opens and migrates a news SQLite store. logger may be nil.
func Open(ctx context.Context, path string, logger *slog.Logger) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	dsn := "file:" + cleanPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	if err := migrations.Up(ctx, sqlDB, migrations.DialectSQLite, logger); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{sqlDB: sqlDB}, nil
}

func (s *Store) Ping(ctx context.Context) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	return s.sqlDB.PingContext(ctx)
}

// Close releases the underlying SQLite connection.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) LatestNews(ctx context.Context, limit int) ([]db.News, error) {
	if limit < 1 {
		return nil, fmt.Errorf("limit must be greater than 0: limit=%d", limit)
	}

	return s.queryNews(ctx, `SELECT `+newsColumns+` FROM news ORDER BY id DESC LIMIT ?`, limit)
}

func (s *Store) News(ctx context.Context) ([]db.News, error) {
	return s.queryNews(ctx, `SELECT `+newsColumns+` FROM news ORDER BY id ASC`)
}

func (s *Store) NewsByID(ctx context.Context, newsID int) (*db.News, error) {
	row := s.sqlDB.QueryRowContext(ctx, `SELECT `+newsColumns+` FROM news WHERE id = ?`, newsID)

	news, err := scanNews(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get news by id: %w", err)
	}

	return &news, nil
}

// SearchNews matches term as a substring of title or content. SQLite LIKE is
// case-insensitive for ASCII.
func (s *Store) SearchNews(ctx context.Context, term string) ([]db.News, error) {
	pattern := "%" + term + "%"
	return s.queryNews(ctx,
		`SELECT `+newsColumns+` FROM news WHERE title LIKE ? OR content LIKE ? ORDER BY id ASC`,
		pattern, pattern,
	)
}

func (s *Store) AddNews(ctx context.Context, n *db.News) error {
	res, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO news (title, content, imageUrl) VALUES (?, ?, ?)`,
		n.Title, n.Content, n.ImageURL,
	)
	if err != nil {
		return fmt.Errorf("failed to insert news: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read inserted id: %w", err)
	}
	n.ID = int(id)

	return nil
}

func (s *Store) UpdateNews(ctx context.Context, newsID int, title, content string) error {
	_, err := s.sqlDB.ExecContext(ctx,
		`UPDATE news SET title = ?, content = ? WHERE id = ?`,
		title, content, newsID,
	)
	if err != nil {
		return fmt.Errorf("failed to update news: %w", err)
	}

	return nil
}

func (s *Store) DeleteNews(ctx context.Context, newsID int) error {
	_, err := s.sqlDB.ExecContext(ctx, `DELETE FROM news WHERE id = ?`, newsID)
	if err != nil {
		return fmt.Errorf("failed to delete news: %w", err)
	}

	return nil
}

func (s *Store) queryNews(ctx context.Context, query string, args ...any) ([]db.News, error) {
	rows, err := s.sqlDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query news: %w", err)
	}
	defer rows.Close()

	var news []db.News
	for rows.Next() {
		n, err := scanNews(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan news: %w", err)
		}
		news = append(news, n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate news: %w", err)
	}

	return news, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanNews(s scanner) (db.News, error) {
	var (
		n        db.News
		imageURL sql.NullString
	)

	if err := s.Scan(&n.ID, &n.Title, &n.Content, &imageURL); err != nil {
		return db.News{}, err
	}

	if imageURL.Valid {
		n.ImageURL = &imageURL.String
	}

	return n, nil
}
