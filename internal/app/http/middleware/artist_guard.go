package middleware

import (
	"net/http"

	"artcert-backend/database"
	"artcert-backend/internal/domain/profiles"

	"github.com/gin-gonic/gin"
)

// RequireArtistProfile gates routes that register or certify artworks.
// Collectors can browse but not certify.
func RequireArtistProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		profileID := c.GetString("profile_id")
		var profile profiles.UserProfile

		if err := database.DB.Where("id = ?", profileID).First(&profile).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "Profile not found",
			})
			return
		}

		if profile.UserType != profiles.UserTypeArtist && profile.UserType != profiles.UserTypeGallery {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "Only artist and gallery accounts can certify artworks",
			})
			return
		}

		c.Next()
	}
}
