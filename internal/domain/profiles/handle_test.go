package profiles

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&UserProfile{}, &VerificationToken{}))
	return db
}

func createProfile(t *testing.T, db *gorm.DB, email string, username, slug *string) UserProfile {
	t.Helper()
	profile := UserProfile{
		Email:    email,
		FullName: "Test Profile",
		Username: username,
		Slug:     slug,
		UserType: UserTypeArtist,
	}
	require.NoError(t, db.Create(&profile).Error)
	return profile
}

func strPtr(s string) *string { return &s }

func TestValidateHandle_Accepts(t *testing.T) {
	for _, handle := range []string{
		"a",
		"jane",
		"jane.doe",
		"Jane_Doe99",
		"a.b.c",
		strings.Repeat("x", 30),
	} {
		assert.NoError(t, ValidateHandle(handle), "handle %q", handle)
	}
}

func TestValidateHandle_RejectsWithReason(t *testing.T) {
	cases := []struct {
		handle string
		reason string
	}{
		{"", "required"},
		{"   ", "required"},
		{strings.Repeat("x", 31), "length"},
		{strings.Repeat("é", 31), "length"},
		{"abc!", "charset"},
		{"jane doe", "charset"},
		{".abc", "edge-dot"},
		{"abc.", "edge-dot"},
		{"a..b", "double-dot"},
	}
	for _, tc := range cases {
		err := ValidateHandle(tc.handle)
		require.Error(t, err, "handle %q", tc.handle)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr, "handle %q", tc.handle)
		assert.Equal(t, tc.reason, verr.Reason, "handle %q", tc.handle)
	}
}

func TestValidateHandle_FirstRuleWins(t *testing.T) {
	// ".a!b." violates charset, edge-dot and (after charset) more; charset
	// is checked before edge-dot
	err := ValidateHandle(".a!b.")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "charset", verr.Reason)
}

func TestValidateHandle_LengthCountsRunes(t *testing.T) {
	// 16 runes but 32 bytes: within the length limit, so the charset
	// rule is what rejects it
	err := ValidateHandle(strings.Repeat("é", 16))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "charset", verr.Reason)
}

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"My Art", "my-art"},
		{"  Jane   Doe  ", "jane-doe"},
		{"Crème Brûlée!", "cr-me-br-l-e"},
		{"---abc---", "abc"},
		{"ABC123", "abc123"},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Slugify(tc.in), "input %q", tc.in)
	}
}

func TestSlugify_Idempotent(t *testing.T) {
	inputs := []string{"My Art", "a__b__c", "UPPER case", "x", strings.Repeat("word ", 30)}
	for _, in := range inputs {
		once := Slugify(in)
		assert.Equal(t, once, Slugify(once), "input %q", in)
	}
}

func TestSlugify_OutputShape(t *testing.T) {
	shape := regexp.MustCompile(`^[a-z0-9-]*$`)
	inputs := []string{"Hello, World!", strings.Repeat("long-word ", 20), "éüñ", "-x-"}
	for _, in := range inputs {
		out := Slugify(in)
		assert.LessOrEqual(t, len(out), 50, "input %q", in)
		assert.Regexp(t, shape, out, "input %q", in)
		assert.False(t, strings.HasPrefix(out, "-"), "input %q", in)
		assert.False(t, strings.HasSuffix(out, "-"), "input %q", in)
	}
}

func TestAllocateUniqueSlug_FirstFree(t *testing.T) {
	db := newTestDB(t)

	slug, err := AllocateUniqueSlug(db, "My Art", "")
	require.NoError(t, err)
	assert.Equal(t, "my-art", slug)
}

func TestAllocateUniqueSlug_SkipsTaken(t *testing.T) {
	db := newTestDB(t)
	createProfile(t, db, "a@example.com", nil, strPtr("my-art"))
	createProfile(t, db, "b@example.com", nil, strPtr("my-art-1"))

	slug, err := AllocateUniqueSlug(db, "My Art", "")
	require.NoError(t, err)
	assert.Equal(t, "my-art-2", slug)
}

func TestAllocateUniqueSlug_CaseInsensitiveProbe(t *testing.T) {
	db := newTestDB(t)
	createProfile(t, db, "a@example.com", nil, strPtr("My-Art"))

	slug, err := AllocateUniqueSlug(db, "my art", "")
	require.NoError(t, err)
	assert.Equal(t, "my-art-1", slug)
}

func TestAllocateUniqueSlug_ExcludesSelf(t *testing.T) {
	db := newTestDB(t)
	p := createProfile(t, db, "a@example.com", nil, strPtr("my-art"))

	slug, err := AllocateUniqueSlug(db, "My Art", p.ID)
	require.NoError(t, err)
	assert.Equal(t, "my-art", slug)
}

func TestUpdateHandle_SetsNormalizedUsername(t *testing.T) {
	db := newTestDB(t)
	p := createProfile(t, db, "a@example.com", nil, nil)

	updated, err := UpdateHandle(db, p.ID, "  Jane.Doe  ")
	require.NoError(t, err)
	require.NotNil(t, updated.Username)
	assert.Equal(t, "jane.doe", *updated.Username)

	var stored UserProfile
	require.NoError(t, db.Where("id = ?", p.ID).First(&stored).Error)
	require.NotNil(t, stored.Username)
	assert.Equal(t, "jane.doe", *stored.Username)
}

func TestUpdateHandle_InvalidInput(t *testing.T) {
	db := newTestDB(t)
	p := createProfile(t, db, "a@example.com", nil, nil)

	_, err := UpdateHandle(db, p.ID, "a..b")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "double-dot", verr.Reason)
}

func TestUpdateHandle_ConflictLeavesProfileUnchanged(t *testing.T) {
	db := newTestDB(t)
	createProfile(t, db, "other@example.com", strPtr("jane"), nil)
	p := createProfile(t, db, "a@example.com", strPtr("original"), nil)

	_, err := UpdateHandle(db, p.ID, "Jane")
	require.ErrorIs(t, err, ErrUsernameTaken)

	var stored UserProfile
	require.NoError(t, db.Where("id = ?", p.ID).First(&stored).Error)
	require.NotNil(t, stored.Username)
	assert.Equal(t, "original", *stored.Username)
}

func TestUpdateHandle_KeepingOwnUsernameIsNotAConflict(t *testing.T) {
	db := newTestDB(t)
	p := createProfile(t, db, "a@example.com", strPtr("jane"), nil)

	updated, err := UpdateHandle(db, p.ID, "JANE")
	require.NoError(t, err)
	assert.Equal(t, "jane", *updated.Username)
}
