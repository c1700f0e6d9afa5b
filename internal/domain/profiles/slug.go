package profiles

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"
)

// How many times EnsureShareSlug re-allocates after losing a uniqueness
// race at the store.
const slugPersistAttempts = 3

// EnsureShareSlug makes sure the profile has a persisted share slug and
// returns it. The base comes from the username when set, otherwise the
// full name.
//
// A unique-violation from the store means a concurrent allocator won the
// candidate; we re-probe and try the next one. If persistence still fails
// the computed slug is returned anyway and the column stays empty, to be
// retried on the next access.
func EnsureShareSlug(db *gorm.DB, profile *UserProfile) (string, error) {
	if profile == nil {
		return "", fmt.Errorf("profile is nil")
	}
	if db == nil {
		return "", fmt.Errorf("db is nil")
	}

	// Already exists
	if profile.Slug != nil && strings.TrimSpace(*profile.Slug) != "" {
		return strings.TrimSpace(*profile.Slug), nil
	}

	if profile.ID == "" {
		return "", fmt.Errorf("profile ID missing (call EnsureShareSlug after Create)")
	}

	base := profile.FullName
	if profile.Username != nil && *profile.Username != "" {
		base = *profile.Username
	}

	var slug string
	for attempt := 0; attempt < slugPersistAttempts; attempt++ {
		var err error
		slug, err = AllocateUniqueSlug(db, base, profile.ID)
		if err != nil {
			return "", err
		}

		err = db.Model(&UserProfile{}).
			Where("id = ?", profile.ID).
			Update("slug", slug).Error
		if err == nil {
			profile.Slug = &slug
			return slug, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			log.Printf("failed to persist slug %q for profile %s: %v", slug, profile.ID, err)
			return slug, nil
		}
		// lost the race, probe again
	}

	log.Printf("gave up persisting slug %q for profile %s after %d attempts", slug, profile.ID, slugPersistAttempts)
	return slug, nil
}

// BuildShareURL builds the public share URL for a profile slug.
// Example: "jane-doe" -> "https://artcert.app/p/jane-doe"
func BuildShareURL(baseURL, slug string) string {
	return strings.TrimRight(baseURL, "/") + "/p/" + slug
}
