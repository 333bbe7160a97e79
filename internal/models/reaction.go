package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Reaction — лайк пользователя на посте. Уникальный индекс по паре
// (user_id, post_id) не даёт одному пользователю лайкнуть пост дважды
// даже при гонке двух toggle-запросов.
type Reaction struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"not null;uniqueIndex:idx_reactions_user_post" json:"user_id"`
	PostID    uuid.UUID `gorm:"not null;uniqueIndex:idx_reactions_user_post" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`

	// Связи
	User User `gorm:"foreignKey:UserID" json:"-"`
	Post Post `gorm:"foreignKey:PostID" json:"-"`
}

func (r *Reaction) BeforeCreate(*gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
