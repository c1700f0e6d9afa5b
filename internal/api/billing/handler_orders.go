package billingapi

import (
	"net/http"

	"artcert-backend/database"
	"artcert-backend/internal/domain/billing"

	"github.com/gin-gonic/gin"
)

func GetOrderHistory(c *gin.Context) {
	profileID := c.GetString("profile_id")
	if profileID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var orders []billing.VerificationOrder
	if err := database.DB.
		Preload("Artwork").
		Where("profile_id = ?", profileID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load orders"})
		return
	}

	c.JSON(http.StatusOK, orders)
}
