package database

import (
	"fmt"
	"log"
	"os"

	"artcert-backend/internal/domain/artworks"
	"artcert-backend/internal/domain/billing"
	"artcert-backend/internal/domain/certificates"
	"artcert-backend/internal/domain/media"
	"artcert-backend/internal/domain/nfctags"
	"artcert-backend/internal/domain/profiles"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	dsn := os.Getenv("DB_URL")
	if dsn == "" {
		log.Fatal("❌ DB_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal("❌ Failed to connect to database:", err)
	}

	DB = db

	if err := DB.AutoMigrate(
		// core
		&profiles.UserProfile{},
		&profiles.VerificationToken{},

		// registry
		&artworks.Artwork{},
		&nfctags.NFCTag{},
		&certificates.Certificate{},

		// media
		&media.Image{},

		// billing
		&billing.VerificationOrder{},
	); err != nil {
		log.Fatal("❌ AutoMigrate error:", err)
	}

	fmt.Println("✅ Connected and migrated successfully")
}
