package users

import (
	"time"
)

type User struct {
	ID           string `gorm:"type:uuid;primaryKey"`
	Email        string `gorm:"not null;uniqueIndex:idx_users_email"`
	PasswordHash string
	FullName     string
	AvatarURL    *string `gorm:"column:avatar_url"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
