package certificates

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Certificate struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	ArtworkID string `gorm:"type:uuid;not null;index" json:"artwork_id"`

	// Human-readable id printed on the certificate, e.g. "COA-4F2A9C1B"
	CertificateID string `gorm:"not null;uniqueIndex:idx_certificates_certificate_id" json:"certificate_id"`

	BlockchainHash *string `json:"blockchain_hash,omitempty"`
	QRCodeURL      *string `json:"qr_code_url,omitempty"`

	GeneratedAt time.Time `json:"generated_at"`
}

func (c *Certificate) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
