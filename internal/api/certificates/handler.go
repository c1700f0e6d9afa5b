package certificatesapi

import (
	"net/http"
	"time"

	"artcert-backend/config"
	"artcert-backend/database"
	"artcert-backend/internal/domain/artworks"
	"artcert-backend/internal/domain/certificates"
	"artcert-backend/internal/domain/profiles"

	"github.com/gin-gonic/gin"
)

type CertificateDTO struct {
	CertificateID  string    `json:"certificate_id"`
	ArtworkID      string    `json:"artwork_id"`
	BlockchainHash *string   `json:"blockchain_hash,omitempty"`
	QRCodeURL      *string   `json:"qr_code_url,omitempty"`
	GeneratedAt    time.Time `json:"generated_at"`
}

type PublicCertificateResponse struct {
	Certificate CertificateDTO `json:"certificate"`
	Artwork     struct {
		Title      string `json:"title"`
		Artist     string `json:"artist,omitempty"`
		Year       int    `json:"year,omitempty"`
		Medium     string `json:"medium,omitempty"`
		Dimensions string `json:"dimensions,omitempty"`
		Status     string `json:"status"`
	} `json:"artwork"`
	OwnerName string `json:"owner_name,omitempty"`
}

func toCertificateDTO(cert *certificates.Certificate) CertificateDTO {
	return CertificateDTO{
		CertificateID:  cert.CertificateID,
		ArtworkID:      cert.ArtworkID,
		BlockchainHash: cert.BlockchainHash,
		QRCodeURL:      cert.QRCodeURL,
		GeneratedAt:    cert.GeneratedAt,
	}
}

// ------------------------------
// POST /artworks/:id/certificate
// ------------------------------
func IssueCertificate(c *gin.Context) {
	profileID := c.GetString("profile_id")
	if profileID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var artwork artworks.Artwork
	if err := database.DB.Where("id = ? AND owner_id = ?", c.Param("id"), profileID).
		First(&artwork).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Artwork not found"})
		return
	}

	// Re-issue returns the current certificate instead of minting twice
	if existing, err := certificates.ForArtwork(database.DB, artwork.ID); err == nil && existing != nil {
		c.JSON(http.StatusOK, toCertificateDTO(existing))
		return
	}

	cert, err := certificates.Issue(database.DB, artwork.ID, config.PUBLIC_BASE_URL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue certificate"})
		return
	}

	c.JSON(http.StatusCreated, toCertificateDTO(cert))
}

// ------------------------------
// GET /certificates/:certificate_id  (public)
// ------------------------------
func GetPublicCertificate(c *gin.Context) {
	certID := c.Param("certificate_id")

	var cert certificates.Certificate
	if err := database.DB.Where("certificate_id = ?", certID).First(&cert).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Certificate not found"})
		return
	}

	var artwork artworks.Artwork
	if err := database.DB.Where("id = ?", cert.ArtworkID).First(&artwork).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Artwork no longer exists"})
		return
	}

	resp := PublicCertificateResponse{
		Certificate: toCertificateDTO(&cert),
	}
	resp.Artwork.Title = artwork.Title
	resp.Artwork.Artist = artwork.Artist
	resp.Artwork.Year = artwork.Year
	resp.Artwork.Medium = artwork.Medium
	resp.Artwork.Dimensions = artwork.Dimensions
	resp.Artwork.Status = artwork.Status

	var owner profiles.UserProfile
	if err := database.DB.Where("id = ?", artwork.OwnerID).First(&owner).Error; err == nil {
		resp.OwnerName = owner.FullName
	}

	c.JSON(http.StatusOK, resp)
}
