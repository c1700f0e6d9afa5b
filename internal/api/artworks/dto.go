package artworksapi

import (
	"time"

	"artcert-backend/internal/domain/artworks"
	"artcert-backend/internal/domain/media"
	"artcert-backend/internal/domain/nfctags"
)

type ArtworkDTO struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Artist     string  `json:"artist,omitempty"`
	Year       int     `json:"year,omitempty"`
	Medium     string  `json:"medium,omitempty"`
	Dimensions string  `json:"dimensions,omitempty"`
	Status     string  `json:"status"`
	ImageID    *string `json:"image_id,omitempty"`

	Image *ImageDTO `json:"image,omitempty"`
	Tag   *TagDTO   `json:"tag,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ImageDTO struct {
	ID           string  `json:"id"`
	OriginalPath string  `json:"original_path"`
	WebpPath     *string `json:"webp_path,omitempty"`
	AvifPath     *string `json:"avif_path,omitempty"`
}

type TagDTO struct {
	ID            string `json:"id"`
	NfcUID        string `json:"nfc_uid"`
	IsBound       bool   `json:"is_bound"`
	BindingStatus string `json:"binding_status"`
}

func toArtworkDTO(a artworks.Artwork, tag *nfctags.NFCTag) ArtworkDTO {
	dto := ArtworkDTO{
		ID:         a.ID,
		Title:      a.Title,
		Artist:     a.Artist,
		Year:       a.Year,
		Medium:     a.Medium,
		Dimensions: a.Dimensions,
		Status:     a.Status,
		ImageID:    a.ImageID,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
	if a.Image != nil {
		dto.Image = toImageDTO(a.Image)
	}
	if tag != nil {
		dto.Tag = toTagDTO(tag)
	}
	return dto
}

func toImageDTO(img *media.Image) *ImageDTO {
	if img == nil {
		return nil
	}
	return &ImageDTO{
		ID:           img.ID,
		OriginalPath: img.OriginalPath,
		WebpPath:     img.WebpPath,
		AvifPath:     img.AvifPath,
	}
}

func toTagDTO(t *nfctags.NFCTag) *TagDTO {
	if t == nil {
		return nil
	}
	return &TagDTO{
		ID:            t.ID,
		NfcUID:        t.NfcUID,
		IsBound:       t.IsBound,
		BindingStatus: t.BindingStatus,
	}
}
