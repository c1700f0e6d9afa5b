package profiles

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"
)

/*
	Handle / slug helpers
	---------------------
	- Responsible ONLY for:
	  • validating usernames
	  • generating slugs
	  • resolving uniqueness against the profiles table
	- No auth logic, no HTTP logic here
*/

const (
	handleMaxLen = 30
	slugMaxLen   = 50
)

var (
	handleCharset = regexp.MustCompile(`^[A-Za-z0-9._]+$`)
	nonSlug       = regexp.MustCompile(`[^a-z0-9]+`)
)

// ErrUsernameTaken is returned when another profile already holds the
// requested username (case-insensitive).
var ErrUsernameTaken = errors.New("username-taken")

// ValidationError reports the first rule a handle failed.
// Reason is one of: required, length, charset, edge-dot, double-dot.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid handle: %s", e.Reason)
}

// ValidateHandle checks a raw username against the handle rules.
// Rules are checked in order and the first failure wins.
func ValidateHandle(raw string) error {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return &ValidationError{Reason: "required"}
	}
	// length counts characters, not bytes
	if utf8.RuneCountInString(trimmed) > handleMaxLen {
		return &ValidationError{Reason: "length"}
	}
	if !handleCharset.MatchString(trimmed) {
		return &ValidationError{Reason: "charset"}
	}
	if strings.HasPrefix(trimmed, ".") || strings.HasSuffix(trimmed, ".") {
		return &ValidationError{Reason: "edge-dot"}
	}
	if strings.Contains(trimmed, "..") {
		return &ValidationError{Reason: "double-dot"}
	}
	return nil
}

// Slugify turns free text into a URL-safe slug.
// Example: "My Art!" -> "my-art". Idempotent.
func Slugify(input string) string {
	s := strings.ToLower(strings.TrimSpace(input))
	s = nonSlug.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if len(s) > slugMaxLen {
		s = s[:slugMaxLen]
		s = strings.TrimRight(s, "-")
	}
	return s
}

// AllocateUniqueSlug probes slug candidates derived from baseInput until one
// is free: base, base-1, base-2, ... The probe is case-insensitive and skips
// the profile identified by excludeID so a profile can keep its own slug.
//
// The probe-then-assign sequence is not transactional; the unique index on
// the slug column is the backstop under concurrent allocators.
func AllocateUniqueSlug(db *gorm.DB, baseInput string, excludeID string) (string, error) {
	base := Slugify(baseInput)
	if base == "" {
		base = "user"
	}

	candidate := base
	for i := 1; ; i++ {
		taken, err := slugTaken(db, candidate, excludeID)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}

func slugTaken(db *gorm.DB, candidate string, excludeID string) (bool, error) {
	var count int64
	q := db.Model(&UserProfile{}).Where("LOWER(slug) = ?", strings.ToLower(candidate))
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func usernameTaken(db *gorm.DB, username string, excludeID string) (bool, error) {
	var count int64
	q := db.Model(&UserProfile{}).Where("LOWER(username) = ?", strings.ToLower(username))
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// UpdateHandle validates and persists a new username for the profile.
// Fails with *ValidationError on malformed input and ErrUsernameTaken when
// another profile already holds the name.
func UpdateHandle(db *gorm.DB, profileID string, rawUsername string) (*UserProfile, error) {
	normalized := strings.ToLower(strings.TrimSpace(rawUsername))
	if err := ValidateHandle(normalized); err != nil {
		return nil, err
	}

	var profile UserProfile
	if err := db.Where("id = ?", profileID).First(&profile).Error; err != nil {
		return nil, err
	}

	if profile.Username == nil || *profile.Username != normalized {
		taken, err := usernameTaken(db, normalized, profileID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrUsernameTaken
		}
	}

	if err := db.Model(&UserProfile{}).
		Where("id = ?", profileID).
		Update("username", normalized).Error; err != nil {
		return nil, err
	}

	profile.Username = &normalized
	return &profile, nil
}
