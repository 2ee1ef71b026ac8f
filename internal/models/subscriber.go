package models

import "time"

// Subscriber is a newsletter recipient. Emails are trimmed and lowercased
// before any lookup or insert. Unsubscribing flips Active to false; rows are
// never hard-deleted.
type Subscriber struct {
	ID               uint      `gorm:"primaryKey"`
	Email            string    `gorm:"uniqueIndex;not null"`
	Name             string
	SubscribedDate   time.Time
	Active           bool   `gorm:"not null;default:true"`
	UnsubscribeToken string `gorm:"column:unsubscribe_token"`
}
