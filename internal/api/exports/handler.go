package exports

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"timestamper-api/database"
	"timestamper-api/internal/app/http/middleware"
	"timestamper-api/internal/domain/plans"
	"timestamper-api/internal/domain/subscriptions"
	"timestamper-api/internal/exports"
	"timestamper-api/internal/infra/cache"

	"github.com/gin-gonic/gin"
)

func maxFor(plan string) *int {
	return plans.ExportLimit(plan)
}

func consume(c *gin.Context, userID string, format string) (subscriptions.Subscription, bool) {
	sub, err := subscriptions.Consume(database.DB, userID, format)
	if err != nil {
		var quotaErr subscriptions.QuotaExceededError
		switch {
		case errors.Is(err, subscriptions.ErrNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Subscription not found"})
		case errors.As(err, &quotaErr):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Export limit reached for your plan",
				"plan":  quotaErr.Plan,
				"used":  quotaErr.Used,
				"max":   quotaErr.Max,
			})
		default:
			log.Printf("export error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error during export"})
		}
		return sub, false
	}

	cache.InvalidateSummary(c.Request.Context(), userID)
	return sub, true
}

// Export spends one unit of quota ahead of a client-side download.
func Export(c *gin.Context) {
	var body struct {
		UserID string `json:"userId"`
		Format string `json:"format"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.UserID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId is required"})
		return
	}

	format := body.Format
	if format == "" || !exports.Format(format).IsValid() {
		format = string(exports.FormatCsv)
	}

	sub, ok := consume(c, body.UserID, format)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":   true,
		"plan": sub.Plan,
		"used": sub.ExportsUsed,
		"max":  maxFor(sub.Plan),
	})
}

// Render serializes a timestamp list server-side, consuming one export.
func Render(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return
	}

	var body struct {
		FileName   string              `json:"fileName" binding:"required"`
		Format     string              `json:"format" binding:"required"`
		Timestamps []exports.Timestamp `json:"timestamps"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	format := exports.Format(body.Format)
	if !format.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown export format"})
		return
	}

	content, err := exports.Render(body.Timestamps, format, body.FileName, time.Now())
	if err != nil {
		log.Printf("render error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error during export"})
		return
	}

	sub, ok := consume(c, userID, string(format))
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"content":  content,
		"fileName": fmt.Sprintf("%s.%s", body.FileName, format.Extension()),
		"mimeType": format.MIMEType(),
		"plan":     sub.Plan,
		"used":     sub.ExportsUsed,
		"max":      maxFor(sub.Plan),
	})
}
