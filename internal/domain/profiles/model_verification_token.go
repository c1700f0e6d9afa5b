package profiles

import "time"

// One live token per profile and purpose: the email-verification token
// (empty Type) and a password-reset token may coexist.
type VerificationToken struct {
	ID        uint        `gorm:"primaryKey"`
	ProfileID string      `gorm:"type:uuid;uniqueIndex:idx_verification_tokens_profile_type"`
	Profile   UserProfile `gorm:"constraint:OnDelete:CASCADE"`
	Token     string      `gorm:"uniqueIndex"`
	Type      string      `gorm:"uniqueIndex:idx_verification_tokens_profile_type"`
	ExpiresAt time.Time
	CreatedAt time.Time
}
