package database

import (
	"github.com/google/uuid"
	"github.com/thereayou/minitweet/internal/models"
)

func (d *Database) CreatePost(post *models.Post) error {
	if err := d.db.Create(post).Error; err != nil {
		return err
	}
	// Подгружаем автора для ответа клиенту
	return d.db.First(&post.User, "id = ?", post.UserID).Error
}

func (d *Database) GetPost(id string) (*models.Post, error) {
	var post models.Post
	if err := d.db.First(&post, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// ListPosts возвращает все посты от новых к старым вместе со счётчиком
// реакций и флагом is_reacted для viewer. Агрегаты собираются двумя
// отдельными запросами, а не подзапросом на каждый пост.
func (d *Database) ListPosts(viewer *uuid.UUID) ([]models.PostRow, error) {
	var posts []models.Post
	// id здесь случайный uuid, так что при равном created_at порядок
	// детерминированный, но не совпадает с порядком вставки
	err := d.db.
		Preload("User").
		Order("created_at DESC, id DESC").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}

	type reactionCount struct {
		PostID uuid.UUID
		Count  int64
	}
	var counts []reactionCount
	err = d.db.Model(&models.Reaction{}).
		Select("post_id, count(*) as count").
		Group("post_id").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}

	countByPost := make(map[uuid.UUID]int64, len(counts))
	for _, rc := range counts {
		countByPost[rc.PostID] = rc.Count
	}

	reactedByPost := make(map[uuid.UUID]bool)
	if viewer != nil {
		var reactedIDs []uuid.UUID
		err = d.db.Model(&models.Reaction{}).
			Where("user_id = ?", *viewer).
			Pluck("post_id", &reactedIDs).Error
		if err != nil {
			return nil, err
		}
		for _, id := range reactedIDs {
			reactedByPost[id] = true
		}
	}

	rows := make([]models.PostRow, len(posts))
	for i, post := range posts {
		rows[i] = models.PostRow{
			Post:           post,
			ReactionsCount: countByPost[post.ID],
			IsReacted:      reactedByPost[post.ID],
		}
	}

	return rows, nil
}
