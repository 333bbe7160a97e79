package database

import (
	"errors"

	"github.com/google/uuid"
	"github.com/thereayou/minitweet/internal/models"
	"gorm.io/gorm"
)

// ToggleReaction ставит или снимает лайк пользователя на посте.
// Проверка и запись идут в одной транзакции, чтобы два параллельных
// toggle не создали дубликат (плюс уникальный индекс в модели).
// Возвращает новое состояние и актуальный счётчик реакций поста.
func (d *Database) ToggleReaction(userID, postID uuid.UUID) (bool, int64, error) {
	var isReacted bool
	var count int64

	err := d.db.Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.First(&post, "id = ?", postID).Error; err != nil {
			return err
		}

		var reaction models.Reaction
		err := tx.Where("user_id = ? AND post_id = ?", userID, postID).First(&reaction).Error
		switch {
		case err == nil:
			if err := tx.Delete(&reaction).Error; err != nil {
				return err
			}
			isReacted = false
		case errors.Is(err, gorm.ErrRecordNotFound):
			reaction = models.Reaction{UserID: userID, PostID: postID}
			if err := tx.Create(&reaction).Error; err != nil {
				return err
			}
			isReacted = true
		default:
			return err
		}

		return tx.Model(&models.Reaction{}).
			Where("post_id = ?", postID).
			Count(&count).Error
	})
	if err != nil {
		return false, 0, err
	}

	return isReacted, count, nil
}
