package users

import (
	"time"

	"gorm.io/gorm"

	"career-pathways-backend/config"
)

type User struct {
	ID           uint   `gorm:"primaryKey"`
	Name         string `json:"name"`
	Email        string `json:"email" gorm:"unique;not null"`
	Password     string `json:"-"`
	Role         string `json:"role" gorm:"not null;default:student"`
	AccessToken  string `json:"token"`
	RefreshToken string `json:"refreshToken"`
	Provider     string `json:"provider"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func GetUserByID(userID interface{}) (*User, error) {
	var user User
	result := config.DB.First(&user, userID)
	if result.Error != nil {
		return nil, result.Error
	}
	return &user, nil
}
