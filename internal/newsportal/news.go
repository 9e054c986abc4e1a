package newsportal

import (
	"context"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/daniilsolovey/newsdesk/internal/db"
)

type Manager struct {
	db Repository
}

func NewNewsManager(repo Repository) *Manager {
	return &Manager{
		db: repo,
	}
}

func (u *Manager) Ping(ctx context.Context) error {
	if err := u.db.Ping(ctx); err != nil {
		return storeError("ping", err)
	}
	return nil
}

// Latest returns up to n newest articles, newest first.
func (u *Manager) Latest(ctx context.Context, n int) ([]Article, error) {
	list, err := u.db.LatestNews(ctx, n)
	if err != nil {
		return nil, storeError("list latest", err)
	}
	return NewArticles(list), nil
}

func (u *Manager) All(ctx context.Context) ([]Article, error) {
	list, err := u.db.News(ctx)
	if err != nil {
		return nil, storeError("list all", err)
	}
	return NewArticles(list), nil
}

// ByID returns nil without error when the article does not exist.
func (u *Manager) ByID(ctx context.Context, id int) (*Article, error) {
	n, err := u.db.NewsByID(ctx, id)
	if err != nil {
		return nil, storeError("get by id", err)
	} else if n == nil {
		return nil, nil
	}

	article := NewArticle(n)
	return &article, nil
}

// Search returns articles whose title or content contains the query. An
// empty query matches every article.
func (u *Manager) Search(ctx context.Context, filter SearchFilter) ([]Article, error) {
	list, err := u.db.SearchNews(ctx, filter.Query)
	if err != nil {
		return nil, storeError("search", err)
	}
	return NewArticles(list), nil
}

// Add stores a new article and returns it with the assigned id.
func (u *Manager) Add(ctx context.Context, title, content, imageURL string) (*Article, error) {
	if err := validateArticle(title, content); err != nil {
		return nil, err
	}

	n := &db.News{
		Title:    title,
		Content:  content,
		ImageURL: &imageURL,
	}

	if err := u.db.AddNews(ctx, n); err != nil {
		return nil, storeError("insert", err)
	}

	article := NewArticle(n)
	return &article, nil
}

// Update changes title and content. The image is left as is.
func (u *Manager) Update(ctx context.Context, id int, title, content string) error {
	if err := validateArticle(title, content); err != nil {
		return err
	}

	if err := u.db.UpdateNews(ctx, id, title, content); err != nil {
		return storeError("update", err)
	}
	return nil
}

func (u *Manager) Delete(ctx context.Context, id int) error {
	if err := u.db.DeleteNews(ctx, id); err != nil {
		return storeError("delete", err)
	}
	return nil
}

func validateArticle(title, content string) error {
	err := validation.Errors{
		"title":   validation.Validate(title, validation.Required, validation.RuneLength(1, 255)),
		"content": validation.Validate(content, validation.Required),
	}.Filter()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArticle, err)
	}
	return nil
}
