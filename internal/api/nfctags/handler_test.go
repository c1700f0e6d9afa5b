package nfctagsapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"artcert-backend/config"
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
		&artworks.Artwork{},
		&nfctags.NFCTag{},
		&certificates.Certificate{},
	))

	database.DB = db
	config.NFC_ALLOW_REBIND = true
	return db
}

func newRouter(profileID string) *gin.Engine {
	r := gin.New()
	if profileID != "" {
		r.Use(func(c *gin.Context) {
			c.Set("profile_id", profileID)
		})
	}
	r.POST("/artworks/:id/tag", LinkTag)
	r.DELETE("/artworks/:id/tag", UnlinkTag)
	r.GET("/nfc/scan/:uid", ScanTag)
	return r
}

func seedArtwork(t *testing.T, db *gorm.DB, title string) (profiles.UserProfile, artworks.Artwork) {
	t.Helper()

	owner := profiles.UserProfile{
		Email:    title + "@example.com",
		FullName: "Jane Doe",
		UserType: profiles.UserTypeArtist,
	}
	require.NoError(t, db.Create(&owner).Error)

	artwork := artworks.Artwork{
		OwnerID: owner.ID,
		Title:   title,
		Status:  artworks.StatusUnverified,
	}
	require.NoError(t, db.Create(&artwork).Error)
	return owner, artwork
}

func TestLinkTagEndpoint(t *testing.T) {
	db := setupTest(t)
	owner, artwork := seedArtwork(t, db, "Sunset")

	r := newRouter(owner.ID)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/artworks/"+artwork.ID+"/tag",
		strings.NewReader(`{"nfc_uid":"04:A2:FF:01"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp TagDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "04:A2:FF:01", resp.NfcUID)
	assert.True(t, resp.IsBound)
	assert.Equal(t, nfctags.BindingBound, resp.BindingStatus)
}

func TestLinkTagEndpoint_RejectsForeignArtwork(t *testing.T) {
	db := setupTest(t)
	_, artwork := seedArtwork(t, db, "Sunset")
	intruder, _ := seedArtwork(t, db, "Other")

	r := newRouter(intruder.ID)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/artworks/"+artwork.ID+"/tag",
		strings.NewReader(`{"nfc_uid":"04:A2:FF:01"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLinkTagEndpoint_RebindDisabled(t *testing.T) {
	db := setupTest(t)
	config.NFC_ALLOW_REBIND = false
	owner, artworkA := seedArtwork(t, db, "Sunset")
	artworkB := artworks.Artwork{OwnerID: owner.ID, Title: "Dawn", Status: artworks.StatusUnverified}
	require.NoError(t, db.Create(&artworkB).Error)

	_, err := nfctags.LinkTag(db, artworkA.ID, "X1", true)
	require.NoError(t, err)

	r := newRouter(owner.ID)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/artworks/"+artworkB.ID+"/tag",
		strings.NewReader(`{"nfc_uid":"X1"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestUnlinkTagEndpoint_NoOp(t *testing.T) {
	db := setupTest(t)
	owner, artwork := seedArtwork(t, db, "Sunset")

	r := newRouter(owner.ID)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/artworks/"+artwork.ID+"/tag", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestScanEndpoint_UnknownTag(t *testing.T) {
	setupTest(t)

	r := newRouter("")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/nfc/scan/never-seen", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestScanEndpoint_BoundTagWithCertificate(t *testing.T) {
	db := setupTest(t)
	_, artwork := seedArtwork(t, db, "Sunset")

	_, err := nfctags.LinkTag(db, artwork.ID, "X1", true)
	require.NoError(t, err)
	cert, err := certificates.Issue(db, artwork.ID, "https://artcert.app")
	require.NoError(t, err)

	r := newRouter("")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/nfc/scan/X1", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp ScanResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "X1", resp.Tag.NfcUID)
	assert.True(t, resp.Tag.IsBound)
	require.NotNil(t, resp.Artwork)
	assert.Equal(t, "Sunset", resp.Artwork.Title)
	assert.Equal(t, "Jane Doe", resp.Artwork.OwnerName)
	require.NotNil(t, resp.Certificate)
	assert.Equal(t, cert.CertificateID, resp.Certificate.CertificateID)
}
