package artworksapi

import (
	"artcert-backend/internal/domain/media"

	"gorm.io/gorm"
)

// imageInput is the image block of an artwork payload. Paths reference
// already-processed assets; no upload handling here.
type imageInput struct {
	OriginalPath string  `json:"original_path" binding:"required"`
	WebpPath     *string `json:"webp_path"`
	AvifPath     *string `json:"avif_path"`
}

// upsertImage rewrites the artwork's current image row in place or
// creates a fresh one, returning the row ID to store on the artwork.
func upsertImage(db *gorm.DB, currentImageID *string, in *imageInput) (*string, error) {
	if currentImageID != nil && *currentImageID != "" {
		if err := db.Model(&media.Image{}).
			Where("id = ?", *currentImageID).
			Updates(map[string]interface{}{
				"original_path": in.OriginalPath,
				"webp_path":     in.WebpPath,
				"avif_path":     in.AvifPath,
			}).Error; err != nil {
			return nil, err
		}
		return currentImageID, nil
	}

	img := media.Image{
		OriginalPath: in.OriginalPath,
		WebpPath:     in.WebpPath,
		AvifPath:     in.AvifPath,
	}
	if err := db.Create(&img).Error; err != nil {
		return nil, err
	}
	return &img.ID, nil
}
