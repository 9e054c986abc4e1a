package newsportal

import "github.com/daniilsolovey/newsdesk/internal/db"

func NewArticle(n *db.News) Article {
	article := Article{
		ID:      n.ID,
		Title:   n.Title,
		Content: n.Content,
	}

	if n.ImageURL != nil {
		article.ImageURL = *n.ImageURL
	}

	return article
}

func NewArticles(list []db.News) []Article {
	result := make([]Article, len(list))
	for i := range list {
		result[i] = NewArticle(&list[i])
	}
	return result
}
