package rpc

type News struct {
	NewsID   int    `json:"newsId"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	ImageURL string `json:"imageUrl,omitempty"`
}

type NewsList []News
