package models

// PostRow — пост ленты вместе с агрегатами по реакциям.
// Собирается в database.ListPosts без N+1 запросов.
type PostRow struct {
	Post           Post
	ReactionsCount int64
	IsReacted      bool
}
