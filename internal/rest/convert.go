package rest

import "github.com/daniilsolovey/newsdesk/internal/newsportal"

func Map[From, To any](list []From, converter func(From) To) []To {
	result := make([]To, len(list))
	for i := range list {
		result[i] = converter(list[i])
	}
	return result
}

func NewNews(a newsportal.Article) News {
	return News{
		ID:       a.ID,
		Title:    a.Title,
		Content:  a.Content,
		ImageURL: a.ImageURL,
	}
}

func NewNewsList(list []newsportal.Article) []News {
	return Map(list, NewNews)
}
