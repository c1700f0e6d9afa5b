package profiles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureShareSlug_MintsFromFullName(t *testing.T) {
	db := newTestDB(t)
	p := createProfile(t, db, "a@example.com", nil, nil)
	p.FullName = "Jane Doe"
	require.NoError(t, db.Save(&p).Error)

	slug, err := EnsureShareSlug(db, &p)
	require.NoError(t, err)
	assert.Equal(t, "jane-doe", slug)

	var stored UserProfile
	require.NoError(t, db.Where("id = ?", p.ID).First(&stored).Error)
	require.NotNil(t, stored.Slug)
	assert.Equal(t, "jane-doe", *stored.Slug)
}

func TestEnsureShareSlug_PrefersUsername(t *testing.T) {
	db := newTestDB(t)
	p := createProfile(t, db, "a@example.com", strPtr("janedoe"), nil)
	p.FullName = "Jane Doe"
	require.NoError(t, db.Save(&p).Error)

	slug, err := EnsureShareSlug(db, &p)
	require.NoError(t, err)
	assert.Equal(t, "janedoe", slug)
}

func TestEnsureShareSlug_ExistingSlugIsStable(t *testing.T) {
	db := newTestDB(t)
	p := createProfile(t, db, "a@example.com", nil, strPtr("already-here"))

	slug, err := EnsureShareSlug(db, &p)
	require.NoError(t, err)
	assert.Equal(t, "already-here", slug)
}

func TestEnsureShareSlug_ResolvesCollision(t *testing.T) {
	db := newTestDB(t)
	createProfile(t, db, "other@example.com", nil, strPtr("jane-doe"))

	p := createProfile(t, db, "a@example.com", nil, nil)
	p.FullName = "Jane Doe"
	require.NoError(t, db.Save(&p).Error)

	slug, err := EnsureShareSlug(db, &p)
	require.NoError(t, err)
	assert.Equal(t, "jane-doe-1", slug)
}

func TestEnsureShareSlug_EmptyNameFallsBack(t *testing.T) {
	db := newTestDB(t)
	p := createProfile(t, db, "a@example.com", nil, nil)
	p.FullName = "!!!"
	require.NoError(t, db.Save(&p).Error)

	slug, err := EnsureShareSlug(db, &p)
	require.NoError(t, err)
	assert.Equal(t, "user", slug)
}

func TestBuildShareURL(t *testing.T) {
	assert.Equal(t, "https://artcert.app/p/jane-doe",
		BuildShareURL("https://artcert.app/", "jane-doe"))
}
