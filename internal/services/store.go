package services

import (
	"github.com/google/uuid"
	"github.com/thereayou/minitweet/internal/models"
)

// UserStore — операции над пользователями, нужные auth-слою
type UserStore interface {
	SaveUser(user *models.User) error
	GetUser(id string) (*models.User, error)
	FindUserByEmail(email string) (*models.User, error)
	EmailTaken(email string) (bool, error)
}

// PostStore — операции над постами и реакциями
type PostStore interface {
	CreatePost(post *models.Post) error
	ListPosts(viewer *uuid.UUID) ([]models.PostRow, error)
	ToggleReaction(userID, postID uuid.UUID) (isReacted bool, reactionsCount int64, err error)
}
