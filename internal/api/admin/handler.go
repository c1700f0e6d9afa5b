package admin

import (
	"net/http"
	"time"

	"artcert-backend/database"
	"artcert-backend/internal/domain/artworks"
	"artcert-backend/internal/domain/billing"
	"artcert-backend/internal/domain/certificates"
	"artcert-backend/internal/domain/nfctags"
	"artcert-backend/internal/domain/profiles"

	"github.com/gin-gonic/gin"
)

type AdminProfile struct {
	ID               string  `json:"id"`
	FullName         string  `json:"full_name"`
	Email            string  `json:"email"`
	Username         *string `json:"username,omitempty"`
	Slug             *string `json:"slug,omitempty"`
	UserType         string  `json:"user_type"`
	Role             string  `json:"role"`
	IsVerified       bool    `json:"is_verified"`
	StripeCustomerID *string `json:"stripe_customer_id,omitempty"`
	CreatedAt        string  `json:"created_at"`
}

type AdminStats struct {
	TotalProfiles    int            `json:"total_profiles"`
	TotalArtworks    int            `json:"total_artworks"`
	VerifiedArtworks int            `json:"verified_artworks"`
	BoundTags        int            `json:"bound_tags"`
	Certificates     int            `json:"certificates"`
	TotalRevenue     float64        `json:"total_revenue"`
	RecentRevenue    float64        `json:"recent_revenue"`
	ProfilesPerType  map[string]int `json:"profiles_per_type"`
}

func AdminDashboard(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Welcome to the admin dashboard 👑",
	})
}

func ListAllProfiles(c *gin.Context) {
	var all []profiles.UserProfile
	err := database.DB.Order("created_at DESC").Find(&all).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profiles"})
		return
	}

	var out []AdminProfile
	for _, p := range all {
		out = append(out, AdminProfile{
			ID:               p.ID,
			FullName:         p.FullName,
			Email:            p.Email,
			Username:         p.Username,
			Slug:             p.Slug,
			UserType:         p.UserType,
			Role:             p.Role,
			IsVerified:       p.IsVerified,
			StripeCustomerID: p.StripeCustomerID,
			CreatedAt:        p.CreatedAt.Format("2006-01-02 15:04"),
		})
	}

	c.JSON(http.StatusOK, out)
}

func GetAdminStats(c *gin.Context) {
	var stats AdminStats

	var totalProfiles, totalArtworks, verifiedArtworks, boundTags, certs int64
	var totalRevenue, recentRevenue float64

	database.DB.Model(&profiles.UserProfile{}).Count(&totalProfiles)
	database.DB.Model(&artworks.Artwork{}).Count(&totalArtworks)
	database.DB.Model(&artworks.Artwork{}).Where("status = ?", artworks.StatusVerified).Count(&verifiedArtworks)
	database.DB.Model(&nfctags.NFCTag{}).Where("is_bound = ?", true).Count(&boundTags)
	database.DB.Model(&certificates.Certificate{}).Count(&certs)

	database.DB.Model(&billing.VerificationOrder{}).
		Where("status = ?", billing.OrderPaid).
		Select("COALESCE(SUM(amount_eur), 0)").Scan(&totalRevenue)

	thirtyDaysAgo := time.Now().AddDate(0, 0, -30)
	database.DB.Model(&billing.VerificationOrder{}).
		Where("status = ? AND created_at >= ?", billing.OrderPaid, thirtyDaysAgo).
		Select("COALESCE(SUM(amount_eur), 0)").Scan(&recentRevenue)

	stats.TotalProfiles = int(totalProfiles)
	stats.TotalArtworks = int(totalArtworks)
	stats.VerifiedArtworks = int(verifiedArtworks)
	stats.BoundTags = int(boundTags)
	stats.Certificates = int(certs)
	stats.TotalRevenue = totalRevenue
	stats.RecentRevenue = recentRevenue

	type TypeCount struct {
		UserType string
		Count    int
	}
	var counts []TypeCount

	database.DB.
		Table("user_profiles").
		Select("user_type, COUNT(id) as count").
		Group("user_type").
		Scan(&counts)

	stats.ProfilesPerType = map[string]int{}
	for _, tc := range counts {
		stats.ProfilesPerType[tc.UserType] = tc.Count
	}

	c.JSON(http.StatusOK, stats)
}

func GetProfileDetails(c *gin.Context) {
	profileID := c.Param("id")

	var profile profiles.UserProfile
	if err := database.DB.Where("id = ?", profileID).First(&profile).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}

	var works []artworks.Artwork
	if err := database.DB.Where("owner_id = ?", profileID).Find(&works).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch artworks"})
		return
	}

	var orders []billing.VerificationOrder
	if err := database.DB.Where("profile_id = ?", profileID).Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"profile":  profile,
		"artworks": works,
		"orders":   orders,
	})
}

// VerifyArtwork lets an admin flip an artwork to verified without a paid
// order (manual review path).
func VerifyArtwork(c *gin.Context) {
	artworkID := c.Param("id")

	var artwork artworks.Artwork
	if err := database.DB.Where("id = ?", artworkID).First(&artwork).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Artwork not found"})
		return
	}

	if err := database.DB.Model(&artwork).
		Update("status", artworks.StatusVerified).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify artwork"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Artwork verified"})
}
