package rpc

import (
	"context"

	"github.com/vmkteam/zenrpc/v2"

	"github.com/daniilsolovey/newsdesk/internal/newsportal"
)

//go:generate zenrpc

// NewsService provides read-only RPC methods over published articles.
type NewsService struct {
	zenrpc.Service
	manager *newsportal.Manager
}

func NewNewsService(manager *newsportal.Manager) *NewsService {
	return &NewsService{manager: manager}
}

// Latest returns the newest articles, newest first.
//
//zenrpc:count=4 number of articles
//zenrpc:return newest articles
//zenrpc:400 count must be positive
//zenrpc:500 internal server error
func (s *NewsService) Latest(ctx context.Context, count *int) (NewsList, error) {
	n := newsportal.LatestCount
	if count != nil {
		n = *count
	}

	if n <= 0 {
		return nil, zenrpc.NewStringError(400, "count must be positive")
	}

	list, err := s.manager.Latest(ctx, n)
	if err != nil {
		return nil, err
	}

	return NewNewsList(list), nil
}

// List returns every article ordered by id.
//
//zenrpc:return all articles
//zenrpc:500 internal server error
func (s *NewsService) List(ctx context.Context) (NewsList, error) {
	list, err := s.manager.All(ctx)
	if err != nil {
		return nil, err
	}

	return NewNewsList(list), nil
}

// ByID returns a single article.
//
//zenrpc:id article id
//zenrpc:return article
//zenrpc:400 id must be positive
//zenrpc:404 news not found
//zenrpc:500 internal server error
func (s *NewsService) ByID(ctx context.Context, id int) (*News, error) {
	if id <= 0 {
		return nil, zenrpc.NewStringError(400, "id must be positive")
	}

	article, err := s.manager.ByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if article == nil {
		return nil, zenrpc.NewStringError(404, "news not found")
	}

	news := NewNews(*article)
	return &news, nil
}

// Search returns articles whose title or content contains query. An empty
// query matches every article.
//
//zenrpc:query search term
//zenrpc:return matching articles
//zenrpc:500 internal server error
func (s *NewsService) Search(ctx context.Context, query string) (NewsList, error) {
	list, err := s.manager.Search(ctx, newsportal.SearchFilter{Query: query})
	if err != nil {
		return nil, err
	}

	return NewNewsList(list), nil
}
