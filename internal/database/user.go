package database

import (
	"github.com/thereayou/minitweet/internal/models"
)

func (d *Database) SaveUser(user *models.User) error {
	return d.db.Create(user).Error
}

func (d *Database) GetUser(id string) (*models.User, error) {
	user := models.User{}
	if err := d.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (d *Database) FindUserByEmail(email string) (*models.User, error) {
	user := models.User{}
	if err := d.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// EmailTaken проверяет, занят ли email, до попытки создания
func (d *Database) EmailTaken(email string) (bool, error) {
	var count int64
	err := d.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}
