package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const DefaultAvatar = "/images/default-avatar.png"

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FirstName    string    `gorm:"not null" json:"first_name"`
	Surname      string    `gorm:"not null" json:"surname"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Avatar       string    `json:"avatar"`
	CreatedAt    time.Time `json:"created_at"`

	// Связи
	Posts     []Post     `gorm:"foreignKey:UserID" json:"-"`
	Reactions []Reaction `gorm:"foreignKey:UserID" json:"-"`
}

// BeforeCreate проставляет uuid на стороне приложения,
// чтобы не зависеть от gen_random_uuid() конкретной СУБД
func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// FullName собирает отображаемое имя из first_name и surname
func (u *User) FullName() string {
	return u.FirstName + " " + u.Surname
}

// AvatarURL возвращает аватар пользователя или дефолтный
func (u *User) AvatarURL() string {
	if u.Avatar != "" {
		return u.Avatar
	}
	return DefaultAvatar
}
