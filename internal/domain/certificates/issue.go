package certificates

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
)

// Attempts before giving up when certificate id generation keeps colliding.
const issueAttempts = 3

func generateCertificateID() string {
	bytes := make([]byte, 4)
	rand.Read(bytes)
	return "COA-" + strings.ToUpper(hex.EncodeToString(bytes))
}

// Issue creates a certificate for the artwork with a fresh unique
// certificate id. qrBase, when non-empty, is the public base URL used to
// build the QR target.
func Issue(db *gorm.DB, artworkID string, qrBase string) (*Certificate, error) {
	for attempt := 0; attempt < issueAttempts; attempt++ {
		certID := generateCertificateID()

		cert := Certificate{
			ArtworkID:     artworkID,
			CertificateID: certID,
			GeneratedAt:   time.Now(),
		}
		if qrBase != "" {
			url := strings.TrimRight(qrBase, "/") + "/certificates/" + certID
			cert.QRCodeURL = &url
		}

		err := db.Create(&cert).Error
		if err == nil {
			return &cert, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}
	}
	return nil, errors.New("could not allocate a unique certificate id")
}

// ForArtwork returns the newest certificate for an artwork, or (nil, nil)
// when none has been issued.
func ForArtwork(db *gorm.DB, artworkID string) (*Certificate, error) {
	var cert Certificate
	err := db.Where("artwork_id = ?", artworkID).
		Order("generated_at DESC").
		First(&cert).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cert, nil
}
