package models

import "time"

// User is a registered newsletter reader. The access token is issued once at
// registration and stays stable across logins.
type User struct {
	ID               uint   `gorm:"primaryKey"`
	Email            string `gorm:"uniqueIndex;not null"`
	Name             string
	RegistrationDate time.Time
	LastLogin        *time.Time
	AccessToken      string
	Active           bool `gorm:"not null;default:true"`
}

// NewsletterView is an append-only audit record of a user opening an
// edition. Writes are best-effort; failures are logged and ignored.
type NewsletterView struct {
	ID             uint `gorm:"primaryKey"`
	UserID         uint `gorm:"not null;index"`
	NewsletterDate string
	ViewedAt       time.Time
}
