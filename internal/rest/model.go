package rest

// News is the view of one article handed to templates.
type News struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	ImageURL string `json:"imageUrl,omitempty"`
}

type IndexPage struct {
	NewsList []News `json:"newsList"`
	User     string `json:"user,omitempty"`
}

type NewsPage struct {
	NewsList []News `json:"newsList"`
	User     string `json:"user,omitempty"`
}

// ArticlePage carries a nil News when the article does not exist.
type ArticlePage struct {
	News *News  `json:"news"`
	User string `json:"user,omitempty"`
}

type SearchPage struct {
	SearchQuery   string `json:"searchQuery"`
	SearchResults []News `json:"searchResults"`
	User          string `json:"user,omitempty"`
}

type LoginPage struct {
	User string `json:"user,omitempty"`
}

type AdminPage struct {
	NewsList []News `json:"newsList"`
	User     string `json:"user,omitempty"`
}

type LoginRequest struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

type AddNewsRequest struct {
	Title   string `form:"newsTitle"`
	Content string `form:"newsContent"`
}

type UpdateNewsRequest struct {
	ID      int    `form:"newsId"`
	Title   string `form:"updatedTitle"`
	Content string `form:"updatedContent"`
}
