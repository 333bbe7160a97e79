package dto

import "github.com/google/uuid"

type CreatePostRequest struct {
	Content string `json:"content" binding:"required,max=280"`
}

type PostAuthor struct {
	ID        uuid.UUID `json:"id"`
	FullName  string    `json:"full_name"`
	FirstName string    `json:"first_name"`
	Surname   string    `json:"surname"`
	Avatar    string    `json:"avatar"`
}

// PostView — пост ленты в том виде, в котором его видит клиент:
// автор с публичными полями, относительное время и агрегаты реакций
type PostView struct {
	ID             uuid.UUID  `json:"id"`
	Content        string     `json:"content"`
	CreatedAt      string     `json:"created_at"`
	User           PostAuthor `json:"user"`
	ReactionsCount int64      `json:"reactions_count"`
	IsReacted      bool       `json:"is_reacted"`
}
