package plans

import (
	"net/http"

	"timestamper-api/database"
	"timestamper-api/internal/domain/plans"

	"github.com/gin-gonic/gin"
)

// ListPlans returns the pricing table for the pricing page.
func ListPlans(c *gin.Context) {
	var all []plans.Plan
	if err := database.DB.Order("price_paise asc").Find(&all).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load plans"})
		return
	}

	out := make([]gin.H, 0, len(all))
	for _, p := range all {
		out = append(out, gin.H{
			"name":         p.Name,
			"pricePaise":   p.PricePaise,
			"interval":     p.Interval,
			"exportsLimit": p.ExportsLimit,
		})
	}

	c.JSON(http.StatusOK, gin.H{"plans": out})
}
