package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-pg/pg/v10"
)

type Repository struct {
	db pg.DBI
}

func New(db pg.DBI) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) Ping(ctx context.Context) error {
	if db, ok := r.db.(*pg.DB); ok {
		if err := db.Ping(ctx); err != nil {
			return err
		}
		return nil
	}

	return nil
}

func (r *Repository) Close() error {
	if db, ok := r.db.(*pg.DB); ok {
		if err := db.Close(); err != nil {
			return err
		}
		return nil
	}

	return nil
}

// LatestNews returns up to limit news ordered by id DESC.
func (r *Repository) LatestNews(ctx context.Context, limit int) ([]News, error) {
	if limit < 1 {
		return nil, fmt.Errorf("limit must be greater than 0: limit=%d", limit)
	}

	var news []News
	err := r.db.ModelContext(ctx, &news).
		OrderExpr(`"t"."id" DESC`).
		Limit(limit).
		Select()

	if err != nil {
		return nil, fmt.Errorf("failed to query latest news: %w", err)
	}

	return news, nil
}

// News returns every row ordered by id.
func (r *Repository) News(ctx context.Context) ([]News, error) {
	var news []News
	err := r.db.ModelContext(ctx, &news).
		OrderExpr(`"t"."id" ASC`).
		Select()

	if err != nil {
		return nil, fmt.Errorf("failed to query news: %w", err)
	}

	return news, nil
}

// NewsByID returns nil without error when no row matches.
func (r *Repository) NewsByID(ctx context.Context, newsID int) (*News, error) {
	news := &News{}
	err := r.db.ModelContext(ctx, news).
		Where(`"t"."id" = ?`, newsID).
		Select()

	if errors.Is(err, pg.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get news by id: %w", err)
	}

	return news, nil
}

// SearchNews matches term as a substring of title or content. The term is
// passed to LIKE as is, so an empty term matches every row.
func (r *Repository) SearchNews(ctx context.Context, term string) ([]News, error) {
	pattern := "%" + term + "%"

	var news []News
	err := r.db.ModelContext(ctx, &news).
		WhereGroup(func(q *pg.Query) (*pg.Query, error) {
			q = q.Where(`"t"."title" LIKE ?`, pattern).
				WhereOr(`"t"."content" LIKE ?`, pattern)
			return q, nil
		}).
		OrderExpr(`"t"."id" ASC`).
		Select()

	if err != nil {
		return nil, fmt.Errorf("failed to search news: %w", err)
	}

	return news, nil
}

// AddNews inserts n and sets n.ID to the assigned key.
func (r *Repository) AddNews(ctx context.Context, n *News) error {
	_, err := r.db.ModelContext(ctx, n).
		Returning(`"id"`).
		Insert()

	if err != nil {
		return fmt.Errorf("failed to insert news: %w", err)
	}

	return nil
}

// UpdateNews changes title and content only. A missing id is not an error.
func (r *Repository) UpdateNews(ctx context.Context, newsID int, title, content string) error {
	n := &News{ID: newsID, Title: title, Content: content}
	_, err := r.db.ModelContext(ctx, n).
		Column(Columns.News.Title, Columns.News.Content).
		WherePK().
		Update()

	if err != nil {
		return fmt.Errorf("failed to update news: %w", err)
	}

	return nil
}

// DeleteNews removes the row permanently. A missing id is not an error.
func (r *Repository) DeleteNews(ctx context.Context, newsID int) error {
	_, err := r.db.ModelContext(ctx, (*News)(nil)).
		Where(`"t"."id" = ?`, newsID).
		Delete()

	if err != nil {
		return fmt.Errorf("failed to delete news: %w", err)
	}

	return nil
}
