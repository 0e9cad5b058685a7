package users

import (
	"net/http"

	"timestamper-api/database"
	"timestamper-api/internal/app/http/middleware"
	"timestamper-api/internal/domain/users"

	"github.com/gin-gonic/gin"
)

// UpdateProfile edits the signed-in user's display name and avatar.
func UpdateProfile(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return
	}

	var input struct {
		FullName  string  `json:"fullName" binding:"required"`
		AvatarURL *string `json:"avatarUrl"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user users.User
	if err := database.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	updates := map[string]interface{}{
		"full_name":  input.FullName,
		"avatar_url": input.AvatarURL,
	}
	if err := database.DB.Model(&users.User{}).Where("id = ?", userID).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":        user.ID,
		"email":     user.Email,
		"fullName":  input.FullName,
		"avatarUrl": input.AvatarURL,
	})
}
