package profiles

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	UserTypeArtist    = "artist"
	UserTypeGallery   = "gallery"
	UserTypeCollector = "collector"
)

const (
	VisibilityPrivate = "private"
	VisibilityPublic  = "public"
)

type UserProfile struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	Email    string `gorm:"not null;uniqueIndex:idx_profiles_email" json:"email"`
	FullName string `json:"full_name"`

	// Unique, case-insensitive, immutable once shared externally.
	// Uniqueness probes go through LOWER(); the index is the backstop.
	Username *string `gorm:"uniqueIndex:idx_profiles_username" json:"username,omitempty"`
	Slug     *string `gorm:"uniqueIndex:idx_profiles_slug" json:"slug,omitempty"`

	UserType          string `gorm:"type:varchar(20);not null;default:'artist'" json:"user_type"`
	ProfileVisibility string `gorm:"type:varchar(20);not null;default:'private'" json:"profile_visibility"`

	Bio     string `json:"bio,omitempty"`
	Website string `json:"website,omitempty"`
	Phone   string `json:"phone,omitempty"`

	Password     *string `gorm:"" json:"-"`
	AuthProvider string  `gorm:"type:varchar(20);not null;default:'local'" json:"-"`
	GoogleSub    *string `gorm:"uniqueIndex:idx_profiles_google_sub" json:"-"`
	Role         string  `json:"-"`
	IsVerified   bool    `json:"-"`

	StripeCustomerID *string `gorm:"column:stripe_customer_id;uniqueIndex:idx_profiles_stripe_customer_id" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *UserProfile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
