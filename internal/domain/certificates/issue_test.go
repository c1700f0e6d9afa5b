package certificates

import (
	"strings"
	"testing"

	"github.com/google/uuid"
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

	require.NoError(t, db.AutoMigrate(&Certificate{}))
	return db
}

func TestIssue_CreatesCertificate(t *testing.T) {
	db := newTestDB(t)
	artworkID := uuid.NewString()

	cert, err := Issue(db, artworkID, "https://artcert.app")
	require.NoError(t, err)

	assert.Equal(t, artworkID, cert.ArtworkID)
	assert.True(t, strings.HasPrefix(cert.CertificateID, "COA-"))
	assert.Len(t, cert.CertificateID, len("COA-")+8)
	require.NotNil(t, cert.QRCodeURL)
	assert.Equal(t, "https://artcert.app/certificates/"+cert.CertificateID, *cert.QRCodeURL)
	assert.False(t, cert.GeneratedAt.IsZero())
}

func TestIssue_NoQRWithoutBaseURL(t *testing.T) {
	db := newTestDB(t)

	cert, err := Issue(db, uuid.NewString(), "")
	require.NoError(t, err)
	assert.Nil(t, cert.QRCodeURL)
}

func TestForArtwork_ReturnsNewest(t *testing.T) {
	db := newTestDB(t)
	artworkID := uuid.NewString()

	first, err := Issue(db, artworkID, "")
	require.NoError(t, err)
	second, err := Issue(db, artworkID, "")
	require.NoError(t, err)

	// same generated_at resolution can tie; both are valid answers, but
	// the newest insert must be found
	found, err := ForArtwork(db, artworkID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Contains(t, []string{first.CertificateID, second.CertificateID}, found.CertificateID)
}

func TestForArtwork_AbsentIsNotAnError(t *testing.T) {
	db := newTestDB(t)

	cert, err := ForArtwork(db, uuid.NewString())
	require.NoError(t, err)
	assert.Nil(t, cert)
}
