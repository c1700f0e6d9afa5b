package artworks

import (
	"time"

	"artcert-backend/internal/domain/media"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusUnverified = "unverified"
	StatusVerified   = "verified"
)

type Artwork struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	OwnerID string `gorm:"type:uuid;not null;index" json:"-"`

	Title      string `gorm:"not null" json:"title"`
	Artist     string `json:"artist,omitempty"`
	Year       int    `json:"year,omitempty"`
	Medium     string `json:"medium,omitempty"`
	Dimensions string `json:"dimensions,omitempty"`

	// unverified -> verified, flipped only by the verification flow
	Status string `gorm:"type:varchar(20);not null;default:'unverified';index" json:"status"`

	ImageID *string      `gorm:"type:uuid" json:"image_id,omitempty"`
	Image   *media.Image `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"image,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Artwork) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
