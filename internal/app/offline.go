package app

import (
	"context"

	"github.com/daniilsolovey/newsdesk/internal/db"
)

// offlineStore stands in for a store that failed to open. Every call reports
// the original connect error.
type offlineStore struct {
	err error
}

func (s offlineStore) Ping(context.Context) error { return s.err }
func (s offlineStore) Close() error               { return nil }

func (s offlineStore) LatestNews(context.Context, int) ([]db.News, error) { return nil, s.err }
func (s offlineStore) News(context.Context) ([]db.News, error)            { return nil, s.err }
func (s offlineStore) NewsByID(context.Context, int) (*db.News, error)    { return nil, s.err }
func (s offlineStore) SearchNews(context.Context, string) ([]db.News, error) {
	return nil, s.err
}
func (s offlineStore) AddNews(context.Context, *db.News) error { return s.err }
func (s offlineStore) UpdateNews(context.Context, int, string, string) error {
	return s.err
}
func (s offlineStore) DeleteNews(context.Context, int) error { return s.err }
