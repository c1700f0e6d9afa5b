package profilesapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"artcert-backend/database"
	"artcert-backend/internal/domain/artworks"
	"artcert-backend/internal/domain/certificates"
	"artcert-backend/internal/domain/nfctags"
	"artcert-backend/internal/domain/profiles"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTest(t *testing.T) *gorm.DB {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&profiles.UserProfile{},
		&profiles.VerificationToken{},
		&artworks.Artwork{},
		&nfctags.NFCTag{},
		&certificates.Certificate{},
	))

	database.DB = db
	return db
}

func newRouter(profileID string) *gin.Engine {
	r := gin.New()
	if profileID != "" {
		r.Use(func(c *gin.Context) {
			c.Set("profile_id", profileID)
		})
	}
	r.GET("/me", GetCurrentProfile)
	r.PUT("/me/username", UpdateUsername)
	r.GET("/p/:slug", GetPublicProfile)
	return r
}

func seedProfile(t *testing.T, db *gorm.DB, email string) profiles.UserProfile {
	t.Helper()
	p := profiles.UserProfile{
		Email:    email,
		FullName: "Jane Doe",
		UserType: profiles.UserTypeArtist,
	}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func TestUpdateUsernameEndpoint(t *testing.T) {
	db := setupTest(t)
	p := seedProfile(t, db, "jane@example.com")

	r := newRouter(p.ID)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/me/username",
		strings.NewReader(`{"username":"Jane.Doe"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp ProfileDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Username)
	assert.Equal(t, "jane.doe", *resp.Username)
}

func TestUpdateUsernameEndpoint_InvalidReason(t *testing.T) {
	db := setupTest(t)
	p := seedProfile(t, db, "jane@example.com")

	r := newRouter(p.ID)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/me/username",
		strings.NewReader(`{"username":"a..b"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "double-dot", resp["reason"])
}

func TestUpdateUsernameEndpoint_Conflict(t *testing.T) {
	db := setupTest(t)
	taken := "jane"
	other := seedProfile(t, db, "other@example.com")
	require.NoError(t, db.Model(&other).Update("username", taken).Error)
	p := seedProfile(t, db, "jane@example.com")

	r := newRouter(p.ID)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/me/username",
		strings.NewReader(`{"username":"JANE"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestPublicProfile_PrivateIsHidden(t *testing.T) {
	db := setupTest(t)
	p := seedProfile(t, db, "jane@example.com")
	require.NoError(t, db.Model(&p).Update("slug", "jane-doe").Error)

	r := newRouter("")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/p/jane-doe", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPublicProfile_ListsVerifiedArtworks(t *testing.T) {
	db := setupTest(t)
	p := seedProfile(t, db, "jane@example.com")
	require.NoError(t, db.Model(&p).Updates(map[string]interface{}{
		"slug":               "jane-doe",
		"profile_visibility": profiles.VisibilityPublic,
	}).Error)

	verified := artworks.Artwork{OwnerID: p.ID, Title: "Sunset", Status: artworks.StatusVerified}
	unverified := artworks.Artwork{OwnerID: p.ID, Title: "Draft", Status: artworks.StatusUnverified}
	require.NoError(t, db.Create(&verified).Error)
	require.NoError(t, db.Create(&unverified).Error)

	r := newRouter("")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/p/Jane-Doe", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp PublicProfileResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Jane Doe", resp.FullName)
	require.Len(t, resp.Artworks, 1)
	assert.Equal(t, "Sunset", resp.Artworks[0].Title)
}

func TestGetCurrentProfile_MintsShareSlug(t *testing.T) {
	db := setupTest(t)
	p := seedProfile(t, db, "jane@example.com")

	r := newRouter(p.ID)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp MeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Share)
	assert.Equal(t, "jane-doe", resp.Share.Slug)
}

func TestGetCurrentProfile_OmitsShareWhenAllocationFails(t *testing.T) {
	db := setupTest(t)
	p := seedProfile(t, db, "jane@example.com")

	// Break the slug column so allocation errors instead of persisting
	require.NoError(t, db.Exec("ALTER TABLE user_profiles RENAME COLUMN slug TO slug_old").Error)

	r := newRouter(p.ID)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	assert.NotContains(t, raw, "share")
}

func TestGatherStats(t *testing.T) {
	db := setupTest(t)
	p := seedProfile(t, db, "jane@example.com")

	a := artworks.Artwork{OwnerID: p.ID, Title: "Sunset", Status: artworks.StatusVerified}
	b := artworks.Artwork{OwnerID: p.ID, Title: "Dawn", Status: artworks.StatusUnverified}
	require.NoError(t, db.Create(&a).Error)
	require.NoError(t, db.Create(&b).Error)

	_, err := nfctags.LinkTag(db, a.ID, "X1", true)
	require.NoError(t, err)
	_, err = certificates.Issue(db, a.ID, "")
	require.NoError(t, err)

	stats := gatherStats(p.ID)
	assert.Equal(t, 2, stats.Artworks)
	assert.Equal(t, 1, stats.VerifiedArtworks)
	assert.Equal(t, 1, stats.BoundTags)
	assert.Equal(t, 1, stats.Certificates)
}
