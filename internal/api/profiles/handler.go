package profilesapi

import (
	"errors"
	"net/http"
	"strings"
	"sync"

	"artcert-backend/config"
	"artcert-backend/database"
	"artcert-backend/internal/domain/artworks"
	"artcert-backend/internal/domain/certificates"
	"artcert-backend/internal/domain/nfctags"
	"artcert-backend/internal/domain/profiles"

	"github.com/gin-gonic/gin"
)

func mustProfileID(c *gin.Context) (string, bool) {
	profileID := c.GetString("profile_id")
	if profileID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return profileID, true
}

// ------------------------------
// GET /me
// ------------------------------
func GetCurrentProfile(c *gin.Context) {
	profileID, ok := mustProfileID(c)
	if !ok {
		return
	}

	var profile profiles.UserProfile
	if err := database.DB.Where("id = ?", profileID).First(&profile).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}

	resp := MeResponse{
		Profile: buildProfileDTO(profile),
		Stats:   gatherStats(profile.ID),
	}

	// No Share block rather than a broken /p/ URL when allocation fails;
	// the next access retries.
	if slug, err := profiles.EnsureShareSlug(database.DB, &profile); err == nil && slug != "" {
		resp.Share = &ShareDTO{
			Slug: slug,
			URL:  profiles.BuildShareURL(config.PUBLIC_BASE_URL, slug),
		}
	}

	c.JSON(http.StatusOK, resp)
}

// gatherStats runs the four counts as independent reads in parallel.
// They have no ordering dependency; this is purely for latency.
func gatherStats(profileID string) StatsDTO {
	var stats StatsDTO
	var wg sync.WaitGroup

	count := func(dst *int, q func() (int64, error)) {
		defer wg.Done()
		n, err := q()
		if err != nil {
			return
		}
		*dst = int(n)
	}

	wg.Add(4)
	go count(&stats.Artworks, func() (int64, error) {
		var n int64
		err := database.DB.Model(&artworks.Artwork{}).
			Where("owner_id = ?", profileID).Count(&n).Error
		return n, err
	})
	go count(&stats.VerifiedArtworks, func() (int64, error) {
		var n int64
		err := database.DB.Model(&artworks.Artwork{}).
			Where("owner_id = ? AND status = ?", profileID, artworks.StatusVerified).Count(&n).Error
		return n, err
	})
	go count(&stats.BoundTags, func() (int64, error) {
		var n int64
		err := database.DB.Model(&nfctags.NFCTag{}).
			Where("is_bound = ? AND artwork_id IN (?)", true,
				database.DB.Model(&artworks.Artwork{}).Select("id").Where("owner_id = ?", profileID),
			).Count(&n).Error
		return n, err
	})
	go count(&stats.Certificates, func() (int64, error) {
		var n int64
		err := database.DB.Model(&certificates.Certificate{}).
			Where("artwork_id IN (?)",
				database.DB.Model(&artworks.Artwork{}).Select("id").Where("owner_id = ?", profileID),
			).Count(&n).Error
		return n, err
	})
	wg.Wait()

	return stats
}

func buildProfileDTO(p profiles.UserProfile) ProfileDTO {
	return ProfileDTO{
		ID:                p.ID,
		Email:             p.Email,
		FullName:          p.FullName,
		Username:          p.Username,
		UserType:          p.UserType,
		ProfileVisibility: p.ProfileVisibility,
		Bio:               stringPtrIfNotEmpty(p.Bio),
		Website:           stringPtrIfNotEmpty(p.Website),
		Phone:             stringPtrIfNotEmpty(p.Phone),
		IsVerified:        p.IsVerified,
	}
}

func stringPtrIfNotEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// ------------------------------
// PUT /me
// ------------------------------
func UpdateProfile(c *gin.Context) {
	profileID, ok := mustProfileID(c)
	if !ok {
		return
	}

	var input struct {
		FullName          *string `json:"full_name"`
		Bio               *string `json:"bio"`
		Website           *string `json:"website"`
		Phone             *string `json:"phone"`
		UserType          *string `json:"user_type"`
		ProfileVisibility *string `json:"profile_visibility"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if input.FullName != nil {
		updates["full_name"] = strings.TrimSpace(*input.FullName)
	}
	if input.Bio != nil {
		updates["bio"] = *input.Bio
	}
	if input.Website != nil {
		updates["website"] = *input.Website
	}
	if input.Phone != nil {
		updates["phone"] = *input.Phone
	}
	if input.UserType != nil {
		switch *input.UserType {
		case profiles.UserTypeArtist, profiles.UserTypeGallery, profiles.UserTypeCollector:
			updates["user_type"] = *input.UserType
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user_type"})
			return
		}
	}
	if input.ProfileVisibility != nil {
		switch *input.ProfileVisibility {
		case profiles.VisibilityPrivate, profiles.VisibilityPublic:
			updates["profile_visibility"] = *input.ProfileVisibility
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid profile_visibility"})
			return
		}
	}

	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
		return
	}

	if err := database.DB.Model(&profiles.UserProfile{}).
		Where("id = ?", profileID).
		Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	var profile profiles.UserProfile
	if err := database.DB.Where("id = ?", profileID).First(&profile).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reload profile"})
		return
	}

	c.JSON(http.StatusOK, buildProfileDTO(profile))
}

// ------------------------------
// PUT /me/username
// ------------------------------
func UpdateUsername(c *gin.Context) {
	profileID, ok := mustProfileID(c)
	if !ok {
		return
	}

	var input struct {
		Username string `json:"username" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing username"})
		return
	}

	profile, err := profiles.UpdateHandle(database.DB, profileID, input.Username)
	if err != nil {
		var verr *profiles.ValidationError
		switch {
		case errors.As(err, &verr):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid username", "reason": verr.Reason})
		case errors.Is(err, profiles.ErrUsernameTaken):
			c.JSON(http.StatusConflict, gin.H{"error": "Username is already taken"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update username"})
		}
		return
	}

	c.JSON(http.StatusOK, buildProfileDTO(*profile))
}

// ------------------------------
// POST /me/share-link
// ------------------------------
func GetShareLink(c *gin.Context) {
	profileID, ok := mustProfileID(c)
	if !ok {
		return
	}

	var profile profiles.UserProfile
	if err := database.DB.Where("id = ?", profileID).First(&profile).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}

	slug, err := profiles.EnsureShareSlug(database.DB, &profile)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate share link"})
		return
	}

	c.JSON(http.StatusOK, ShareDTO{
		Slug: slug,
		URL:  profiles.BuildShareURL(config.PUBLIC_BASE_URL, slug),
	})
}

// ------------------------------
// GET /verify
// ------------------------------
func VerifyEmail(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing token"})
		return
	}

	var t profiles.VerificationToken
	if err := database.DB.Where("token = ? AND type = ?", token, "").First(&t).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired token"})
		return
	}

	if err := database.DB.Model(&profiles.UserProfile{}).
		Where("id = ?", t.ProfileID).
		Update("is_verified", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify account"})
		return
	}

	database.DB.Delete(&t)

	c.Redirect(http.StatusTemporaryRedirect, config.APP_URL+"/signin")
}

// ------------------------------
// GET /p/:slug  (public)
// ------------------------------
func GetPublicProfile(c *gin.Context) {
	slug := c.Param("slug")

	var profile profiles.UserProfile
	err := database.DB.Where("LOWER(slug) = ?", strings.ToLower(slug)).First(&profile).Error
	if err != nil || profile.ProfileVisibility != profiles.VisibilityPublic {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}

	var works []artworks.Artwork
	if err := database.DB.
		Where("owner_id = ? AND status = ?", profile.ID, artworks.StatusVerified).
		Order("created_at DESC").
		Find(&works).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load artworks"})
		return
	}

	resp := PublicProfileResponse{
		FullName: profile.FullName,
		Username: profile.Username,
		UserType: profile.UserType,
		Bio:      stringPtrIfNotEmpty(profile.Bio),
		Website:  stringPtrIfNotEmpty(profile.Website),
		Artworks: make([]PublicArtworkDTO, 0, len(works)),
	}
	for _, a := range works {
		resp.Artworks = append(resp.Artworks, PublicArtworkDTO{
			ID:         a.ID,
			Title:      a.Title,
			Artist:     a.Artist,
			Year:       a.Year,
			Medium:     a.Medium,
			Dimensions: a.Dimensions,
			Status:     a.Status,
			CreatedAt:  a.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, resp)
}
