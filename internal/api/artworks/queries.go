package artworksapi

import (
	"artcert-backend/internal/domain/artworks"

	"gorm.io/gorm"
)

func ownerArtworksQuery(db *gorm.DB, profileID string) *gorm.DB {
	return db.Model(&artworks.Artwork{}).
		Preload("Image").
		Where("owner_id = ?", profileID)
}

func ownedArtwork(db *gorm.DB, profileID, artworkID string) (*artworks.Artwork, error) {
	var artwork artworks.Artwork
	err := db.Preload("Image").
		Where("id = ? AND owner_id = ?", artworkID, profileID).First(&artwork).Error
	if err != nil {
		return nil, err
	}
	return &artwork, nil
}
