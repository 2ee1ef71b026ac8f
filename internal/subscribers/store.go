// Package subscribers manages the newsletter mailing list.
package subscribers

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/jimdaga/morning-press/internal/models"
	"github.com/jimdaga/morning-press/internal/token"
)

var (
	ErrInvalidEmail      = errors.New("invalid email format")
	ErrAlreadySubscribed = errors.New("email already subscribed")
	ErrInvalidToken      = errors.New("invalid unsubscribe token")
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// NormalizeEmail lowercases and trims an address so the unique index
// catches case-variant duplicates.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidEmail reports whether a normalized address matches the standard
// local@domain pattern. Both the mailing-list and reader stores gate on it.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Subscribe validates and inserts a new subscriber with a fresh
// unsubscribe token. Duplicate addresses are reported, never overwritten.
func (s *Store) Subscribe(email, name string) (*models.Subscriber, error) {
	email = NormalizeEmail(email)
	if !ValidEmail(email) {
		return nil, ErrInvalidEmail
	}

	tok, err := token.New()
	if err != nil {
		return nil, err
	}

	sub := models.Subscriber{
		Email:            email,
		Name:             strings.TrimSpace(name),
		SubscribedDate:   time.Now(),
		Active:           true,
		UnsubscribeToken: tok,
	}
	if err := s.db.Create(&sub).Error; err != nil {
		if isDuplicateErr(err) {
			return nil, ErrAlreadySubscribed
		}
		return nil, err
	}
	return &sub, nil
}

// Unsubscribe deactivates the subscriber holding the token. Tokens only
// match active rows, so a second use reports an invalid token.
func (s *Store) Unsubscribe(tok string) error {
	result := s.db.Model(&models.Subscriber{}).
		Where("unsubscribe_token = ? AND active = ?", tok, true).
		Update("active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInvalidToken
	}
	return nil
}

// ActiveSubscribers returns all active rows ordered by signup date.
func (s *Store) ActiveSubscribers() ([]models.Subscriber, error) {
	var subs []models.Subscriber
	err := s.db.Where("active = ?", true).Order("subscribed_date desc").Find(&subs).Error
	return subs, err
}

// ActiveEmails returns just the addresses of active subscribers.
func (s *Store) ActiveEmails() ([]string, error) {
	var emails []string
	err := s.db.Model(&models.Subscriber{}).Where("active = ?", true).Pluck("email", &emails).Error
	return emails, err
}

// Count returns the number of active subscribers.
func (s *Store) Count() (int64, error) {
	var n int64
	err := s.db.Model(&models.Subscriber{}).Where("active = ?", true).Count(&n).Error
	return n, err
}

func isDuplicateErr(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "UNIQUE constraint failed")
}
