package users

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EnsureProvisioned makes sure the profile row exists, creating it when
// absent and touching nothing when it already does. Called from signup and
// from every session restore, so an account that lost its profile row to a
// partial signup heals on next contact.
func EnsureProvisioned(db *gorm.DB, user User) (User, error) {
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoNothing: true,
	}).Create(&user).Error; err != nil {
		return User{}, err
	}

	var existing User
	if err := db.Where("id = ?", user.ID).First(&existing).Error; err != nil {
		return User{}, err
	}
	return existing, nil
}
