package rpc

import "github.com/daniilsolovey/newsdesk/internal/newsportal"

func NewNews(a newsportal.Article) News {
	return News{
		NewsID:   a.ID,
		Title:    a.Title,
		Content:  a.Content,
		ImageURL: a.ImageURL,
	}
}

func NewNewsList(list []newsportal.Article) NewsList {
	result := make(NewsList, len(list))
	for i := range list {
		result[i] = NewNews(list[i])
	}
	return result
}
