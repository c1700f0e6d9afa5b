package nfctags

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	BindingBound   = "bound"
	BindingUnbound = "unbound"
	BindingPending = "pending"
)

// NFCTag is the registry row for a physical tag. A tag with a NULL
// artwork reference is in the unbound state; the UID is globally unique.
type NFCTag struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	NfcUID    string  `gorm:"column:nfc_uid;not null;uniqueIndex:idx_nfc_tags_uid" json:"nfc_uid"`
	ArtworkID *string `gorm:"type:uuid;index" json:"artwork_id,omitempty"`

	IsBound       bool   `gorm:"not null;default:false" json:"is_bound"`
	BindingStatus string `gorm:"type:varchar(20);not null;default:'unbound'" json:"binding_status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (t *NFCTag) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
