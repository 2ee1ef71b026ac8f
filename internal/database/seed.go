package database

import (
	"log"
	"time"

	"github.com/jimdaga/morning-press/internal/models"
	"gorm.io/gorm"
)

// SeedDevData populates the database with development test data.
// Idempotent: skips if data already exists.
func SeedDevData(db *gorm.DB) error {
	var existing models.Subscriber
	result := db.Where("email = ?", "dev@morningpress.local").First(&existing)
	if result.Error == nil {
		log.Println("Seed data already exists, skipping")
		return nil
	}

	subscriber := models.Subscriber{
		Email:            "dev@morningpress.local",
		Name:             "Dev Subscriber",
		SubscribedDate:   time.Now(),
		Active:           true,
		UnsubscribeToken: "dev-unsubscribe-token-placeholder",
	}
	if err := db.Create(&subscriber).Error; err != nil {
		return err
	}

	now := time.Now()
	user := models.User{
		Email:            "reader@morningpress.local",
		Name:             "Dev Reader",
		RegistrationDate: now,
		LastLogin:        &now,
		AccessToken:      "dev-access-token-placeholder",
		Active:           true,
	}
	if err := db.Create(&user).Error; err != nil {
		return err
	}

	log.Println("Seeded dev data: 1 subscriber, 1 registered user")
	return nil
}
