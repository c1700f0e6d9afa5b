package nfctags

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

/*
	Binding resolver
	----------------
	- Responsible ONLY for:
	  • establishing / changing / removing a tag<->artwork binding
	  • lookups by UID or artwork
	- No permission checks, no HTTP logic here
	- Read-then-write, not transactional; the unique index on nfc_uid is
	  the backstop under concurrent linkers
*/

// ErrTagBoundElsewhere is returned when rebinding is disallowed and the
// tag already points at a different artwork.
var ErrTagBoundElsewhere = errors.New("tag already bound to another artwork")

// LinkTag binds the physical tag identified by uid to the artwork. An
// unseen UID gets a fresh row; a known UID is rebound in place, so a UID
// never has more than one row. allowRebind governs whether a tag bound to
// a different artwork may be silently moved.
//
// Any other tag currently bound to the same artwork is released first, so
// an artwork ends up with at most one bound tag.
func LinkTag(db *gorm.DB, artworkID string, uid string, allowRebind bool) (*NFCTag, error) {
	if uid == "" {
		return nil, fmt.Errorf("uid is required")
	}

	existing, err := LookupByUID(db, uid)
	if err != nil {
		return nil, err
	}

	if existing != nil && !allowRebind &&
		existing.ArtworkID != nil && *existing.ArtworkID != artworkID {
		return nil, ErrTagBoundElsewhere
	}

	// Release any other tag pointing at this artwork
	releaseQuery := db.Model(&NFCTag{}).Where("artwork_id = ?", artworkID)
	if existing != nil {
		releaseQuery = releaseQuery.Where("id <> ?", existing.ID)
	}
	if err := releaseQuery.Updates(map[string]interface{}{
		"artwork_id":     nil,
		"is_bound":       false,
		"binding_status": BindingUnbound,
	}).Error; err != nil {
		return nil, err
	}

	if existing != nil {
		if err := db.Model(&NFCTag{}).
			Where("id = ?", existing.ID).
			Updates(map[string]interface{}{
				"artwork_id":     artworkID,
				"is_bound":       true,
				"binding_status": BindingBound,
			}).Error; err != nil {
			return nil, err
		}
		return LookupByUID(db, uid)
	}

	tag := NFCTag{
		NfcUID:        uid,
		ArtworkID:     &artworkID,
		IsBound:       true,
		BindingStatus: BindingBound,
	}
	if err := db.Create(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

// UnlinkTag releases the tag currently bound to the artwork. Succeeds as
// a no-op when no tag references it.
func UnlinkTag(db *gorm.DB, artworkID string) error {
	return db.Model(&NFCTag{}).
		Where("artwork_id = ?", artworkID).
		Updates(map[string]interface{}{
			"artwork_id":     nil,
			"is_bound":       false,
			"binding_status": BindingUnbound,
		}).Error
}

// LookupByUID returns the tag row for a physical UID, or (nil, nil) when
// the UID has never been seen. Absence is not an error.
func LookupByUID(db *gorm.DB, uid string) (*NFCTag, error) {
	var tag NFCTag
	err := db.Where("nfc_uid = ?", uid).First(&tag).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// LookupByArtwork returns the tag currently referencing the artwork, or
// (nil, nil) when it has none.
func LookupByArtwork(db *gorm.DB, artworkID string) (*NFCTag, error) {
	var tag NFCTag
	err := db.Where("artwork_id = ?", artworkID).First(&tag).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tag, nil
}
