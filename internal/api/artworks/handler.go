package artworksapi

import (
	"fmt"
	"net/http"

	"artcert-backend/database"
	"artcert-backend/internal/domain/artworks"
	"artcert-backend/internal/domain/certificates"
	"artcert-backend/internal/domain/media"
	"artcert-backend/internal/domain/nfctags"

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
// GET /artworks
// ------------------------------
func ListArtworks(c *gin.Context) {
	profileID, ok := mustProfileID(c)
	if !ok {
		return
	}

	var works []artworks.Artwork
	err := ownerArtworksQuery(database.DB, profileID).
		Order("created_at DESC").
		Find(&works).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load artworks"})
		return
	}

	out := make([]ArtworkDTO, 0, len(works))
	for _, a := range works {
		tag, _ := nfctags.LookupByArtwork(database.DB, a.ID)
		out = append(out, toArtworkDTO(a, tag))
	}

	c.JSON(http.StatusOK, out)
}

// ------------------------------
// GET /artworks/:id
// ------------------------------
func GetArtworkByID(c *gin.Context) {
	profileID, ok := mustProfileID(c)
	if !ok {
		return
	}

	artwork, err := ownedArtwork(database.DB, profileID, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Artwork not found"})
		return
	}

	tag, err := nfctags.LookupByArtwork(database.DB, artwork.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load tag"})
		return
	}

	c.JSON(http.StatusOK, toArtworkDTO(*artwork, tag))
}

// ------------------------------
// POST /artworks
// ------------------------------
func CreateArtwork(c *gin.Context) {
	profileID, ok := mustProfileID(c)
	if !ok {
		return
	}

	var input struct {
		Title      string      `json:"title" binding:"required"`
		Artist     string      `json:"artist"`
		Year       int         `json:"year"`
		Medium     string      `json:"medium"`
		Dimensions string      `json:"dimensions"`
		Image      *imageInput `json:"image"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var imageID *string
	if input.Image != nil {
		id, err := upsertImage(database.DB, nil, input.Image)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store image"})
			return
		}
		imageID = id
	}

	artwork := artworks.Artwork{
		OwnerID:    profileID,
		Title:      input.Title,
		Artist:     input.Artist,
		Year:       input.Year,
		Medium:     input.Medium,
		Dimensions: input.Dimensions,
		Status:     artworks.StatusUnverified,
		ImageID:    imageID,
	}

	if err := database.DB.Create(&artwork).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create artwork"})
		return
	}

	created, err := ownedArtwork(database.DB, profileID, artwork.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reload artwork"})
		return
	}

	c.JSON(http.StatusCreated, toArtworkDTO(*created, nil))
}

// ------------------------------
// PUT /artworks/:id
// ------------------------------
func UpdateArtwork(c *gin.Context) {
	profileID, ok := mustProfileID(c)
	if !ok {
		return
	}

	artwork, err := ownedArtwork(database.DB, profileID, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Artwork not found"})
		return
	}

	var input struct {
		Title      *string     `json:"title"`
		Artist     *string     `json:"artist"`
		Year       *int        `json:"year"`
		Medium     *string     `json:"medium"`
		Dimensions *string     `json:"dimensions"`
		Image      *imageInput `json:"image"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if input.Title != nil {
		if *input.Title == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Title cannot be empty"})
			return
		}
		updates["title"] = *input.Title
	}
	if input.Artist != nil {
		updates["artist"] = *input.Artist
	}
	if input.Year != nil {
		updates["year"] = *input.Year
	}
	if input.Medium != nil {
		updates["medium"] = *input.Medium
	}
	if input.Dimensions != nil {
		updates["dimensions"] = *input.Dimensions
	}
	if input.Image != nil {
		imgID, err := upsertImage(database.DB, artwork.ImageID, input.Image)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store image"})
			return
		}
		updates["image_id"] = imgID
	}

	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
		return
	}

	if err := database.DB.Model(artwork).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update artwork"})
		return
	}

	updated, err := ownedArtwork(database.DB, profileID, artwork.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reload artwork"})
		return
	}

	tag, _ := nfctags.LookupByArtwork(database.DB, artwork.ID)
	c.JSON(http.StatusOK, toArtworkDTO(*updated, tag))
}

// ------------------------------
// DELETE /artworks/:id
// ------------------------------
func DeleteArtwork(c *gin.Context) {
	profileID, ok := mustProfileID(c)
	if !ok {
		return
	}

	artwork, err := ownedArtwork(database.DB, profileID, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Artwork not found"})
		return
	}

	// Release the tag and drop certificates before the row goes away
	if err := nfctags.UnlinkTag(database.DB, artwork.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to release tag"})
		return
	}
	if err := database.DB.Where("artwork_id = ?", artwork.ID).
		Delete(&certificates.Certificate{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove certificates"})
		return
	}

	if err := database.DB.Delete(artwork).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete artwork"})
		return
	}

	if artwork.ImageID != nil {
		if err := database.DB.Where("id = ?", *artwork.ImageID).
			Delete(&media.Image{}).Error; err != nil {
			fmt.Println("❌ Failed to remove artwork image:", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Artwork deleted"})
}
