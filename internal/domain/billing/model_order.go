package billing

import (
	"time"

	"artcert-backend/internal/domain/artworks"
	"artcert-backend/internal/domain/profiles"
)

const (
	OrderPending = "pending"
	OrderPaid    = "paid"
	OrderFailed  = "failed"
)

// VerificationOrder tracks a paid artwork-verification request through
// Stripe checkout. One order per checkout session.
type VerificationOrder struct {
	ID        uint                 `gorm:"primaryKey"`
	ProfileID string               `gorm:"type:uuid;not null;index"`
	Profile   profiles.UserProfile `gorm:"foreignKey:ProfileID"`
	ArtworkID string               `gorm:"type:uuid;not null;index"`
	Artwork   artworks.Artwork     `gorm:"foreignKey:ArtworkID"`

	StripeSessionID string `gorm:"uniqueIndex"`
	AmountEUR       float64
	Status          string
	ReceiptURL      *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
