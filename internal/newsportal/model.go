package newsportal

import (
	"context"

	"github.com/daniilsolovey/newsdesk/internal/db"
)

// LatestCount is the number of articles shown on the landing page.
const LatestCount = 4

// Article is a single news record. ImageURL is empty when no image was uploaded.
type Article struct {
	ID       int
	Title    string
	Content  string
	ImageURL string
}

// SearchFilter is decoded from the search query string.
type SearchFilter struct {
	Query string
}

// Repository is the persistence contract over the news table. NewsByID
// returns (nil, nil) when no row matches; UpdateNews and DeleteNews do not
// fail on a missing id.
type Repository interface {
	Ping(ctx context.Context) error
	Close() error
	LatestNews(ctx context.Context, limit int) ([]db.News, error)
	News(ctx context.Context) ([]db.News, error)
	NewsByID(ctx context.Context, newsID int) (*db.News, error)
	SearchNews(ctx context.Context, term string) ([]db.News, error)
	AddNews(ctx context.Context, n *db.News) error
	UpdateNews(ctx context.Context, newsID int, title, content string) error
	DeleteNews(ctx context.Context, newsID int) error
}
