package client

import (
	"context"
	"errors"
	"strings"
)

// Feed — состояние экрана ленты: посты, черновик и флаги загрузки.
// Публикация не делает оптимистичных вставок, а перезапрашивает всю
// ленту; переключение лайка правит только затронутый пост по ответу
// сервера. Откатов нет: при ошибке состояние просто не меняется
type Feed struct {
	client *Client

	Posts   []Post
	Draft   string
	Loading bool
	Err     string
}

func NewFeed(client *Client) *Feed {
	return &Feed{client: client}
}

// Load перезагружает ленту целиком
func (f *Feed) Load(ctx context.Context) error {
	posts, err := f.client.Posts(ctx)
	if err != nil {
		return err
	}
	f.Posts = posts
	return nil
}

// Submit публикует черновик и при успехе перезапрашивает ленту
func (f *Feed) Submit(ctx context.Context) error {
	if strings.TrimSpace(f.Draft) == "" {
		return nil
	}

	f.Loading = true
	f.Err = ""
	defer func() { f.Loading = false }()

	if _, err := f.client.CreatePost(ctx, f.Draft); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			if msg := apiErr.FieldError("content"); msg != "" {
				f.Err = msg
			} else {
				f.Err = "Failed to post"
			}
		}
		return err
	}

	f.Draft = ""
	return f.Load(ctx)
}

// Toggle переключает лайк и правит пост на месте по ответу сервера
func (f *Feed) Toggle(ctx context.Context, postID string) error {
	for i := range f.Posts {
		if f.Posts[i].ID.String() != postID {
			continue
		}

		result, err := f.client.ToggleReaction(ctx, f.Posts[i].ID)
		if err != nil {
			return err
		}

		f.Posts[i].IsReacted = result.IsReacted
		f.Posts[i].ReactionsCount = result.ReactionsCount
		return nil
	}

	return nil
}
