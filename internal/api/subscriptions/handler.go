package subscriptions

import (
	"errors"
	"log"
	"net/http"

	"timestamper-api/database"
	"timestamper-api/internal/domain/subscriptions"
	"timestamper-api/internal/infra/cache"

	"github.com/gin-gonic/gin"
)

// GetSubscription answers the quota summary the dashboard polls for.
func GetSubscription(c *gin.Context) {
	userID := c.Param("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId is required"})
		return
	}

	if summary, ok := cache.GetSummary(c.Request.Context(), userID); ok {
		c.JSON(http.StatusOK, summary)
		return
	}

	sub, err := subscriptions.Get(database.DB, userID)
	if err != nil {
		if errors.Is(err, subscriptions.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Subscription not found"})
			return
		}
		log.Printf("get subscription error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	summary := subscriptions.Summarize(sub)
	cache.SetSummary(c.Request.Context(), userID, summary)
	c.JSON(http.StatusOK, summary)
}
