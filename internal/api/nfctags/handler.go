package nfctagsapi

import (
	"errors"
	"net/http"
	"time"

	"artcert-backend/config"
	"artcert-backend/database"
	"artcert-backend/internal/domain/artworks"
	"artcert-backend/internal/domain/certificates"
	"artcert-backend/internal/domain/nfctags"
	"artcert-backend/internal/domain/profiles"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ScanResponse struct {
	Tag         TagDTO          `json:"tag"`
	Artwork     *ScanArtworkDTO `json:"artwork,omitempty"`
	Certificate *ScanCertDTO    `json:"certificate,omitempty"`
}

type TagDTO struct {
	NfcUID        string `json:"nfc_uid"`
	IsBound       bool   `json:"is_bound"`
	BindingStatus string `json:"binding_status"`
}

type ScanArtworkDTO struct {
	Title      string `json:"title"`
	Artist     string `json:"artist,omitempty"`
	Year       int    `json:"year,omitempty"`
	Medium     string `json:"medium,omitempty"`
	Dimensions string `json:"dimensions,omitempty"`
	Status     string `json:"status"`
	OwnerName  string `json:"owner_name,omitempty"`
}

type ScanCertDTO struct {
	CertificateID  string    `json:"certificate_id"`
	BlockchainHash *string   `json:"blockchain_hash,omitempty"`
	QRCodeURL      *string   `json:"qr_code_url,omitempty"`
	GeneratedAt    time.Time `json:"generated_at"`
}

func ownedArtwork(c *gin.Context, artworkID string) (*artworks.Artwork, bool) {
	profileID := c.GetString("profile_id")
	if profileID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return nil, false
	}

	var artwork artworks.Artwork
	if err := database.DB.Where("id = ? AND owner_id = ?", artworkID, profileID).
		First(&artwork).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Artwork not found"})
		return nil, false
	}
	return &artwork, true
}

// ------------------------------
// POST /artworks/:id/tag
// ------------------------------
func LinkTag(c *gin.Context) {
	artwork, ok := ownedArtwork(c, c.Param("id"))
	if !ok {
		return
	}

	var input struct {
		NfcUID string `json:"nfc_uid" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing nfc_uid"})
		return
	}

	tag, err := nfctags.LinkTag(database.DB, artwork.ID, input.NfcUID, config.NFC_ALLOW_REBIND)
	if err != nil {
		switch {
		case errors.Is(err, nfctags.ErrTagBoundElsewhere):
			c.JSON(http.StatusConflict, gin.H{"error": "Tag is already bound to another artwork"})
		case errors.Is(err, gorm.ErrDuplicatedKey):
			c.JSON(http.StatusConflict, gin.H{"error": "Tag was registered concurrently, try again"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to link tag"})
		}
		return
	}

	c.JSON(http.StatusOK, TagDTO{
		NfcUID:        tag.NfcUID,
		IsBound:       tag.IsBound,
		BindingStatus: tag.BindingStatus,
	})
}

// ------------------------------
// DELETE /artworks/:id/tag
// ------------------------------
func UnlinkTag(c *gin.Context) {
	artwork, ok := ownedArtwork(c, c.Param("id"))
	if !ok {
		return
	}

	if err := nfctags.UnlinkTag(database.DB, artwork.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unlink tag"})
		return
	}

	// No-op when nothing was bound; the tag is gone either way
	c.JSON(http.StatusOK, gin.H{"message": "Tag unlinked"})
}

// ------------------------------
// GET /nfc/scan/:uid  (public)
// ------------------------------
func ScanTag(c *gin.Context) {
	uid := c.Param("uid")

	tag, err := nfctags.LookupByUID(database.DB, uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Lookup failed"})
		return
	}
	if tag == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown tag"})
		return
	}

	resp := ScanResponse{
		Tag: TagDTO{
			NfcUID:        tag.NfcUID,
			IsBound:       tag.IsBound,
			BindingStatus: tag.BindingStatus,
		},
	}

	if tag.ArtworkID != nil {
		var artwork artworks.Artwork
		if err := database.DB.Where("id = ?", *tag.ArtworkID).First(&artwork).Error; err == nil {
			dto := ScanArtworkDTO{
				Title:      artwork.Title,
				Artist:     artwork.Artist,
				Year:       artwork.Year,
				Medium:     artwork.Medium,
				Dimensions: artwork.Dimensions,
				Status:     artwork.Status,
			}

			var owner profiles.UserProfile
			if err := database.DB.Where("id = ?", artwork.OwnerID).First(&owner).Error; err == nil {
				dto.OwnerName = owner.FullName
			}
			resp.Artwork = &dto

			cert, err := certificates.ForArtwork(database.DB, artwork.ID)
			if err == nil && cert != nil {
				resp.Certificate = &ScanCertDTO{
					CertificateID:  cert.CertificateID,
					BlockchainHash: cert.BlockchainHash,
					QRCodeURL:      cert.QRCodeURL,
					GeneratedAt:    cert.GeneratedAt,
				}
			}
		}
	}

	c.JSON(http.StatusOK, resp)
}
