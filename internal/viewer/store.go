// Package viewer manages registered readers and their access to the
// newsletter archive.
package viewer

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/jimdaga/morning-press/internal/models"
	"github.com/jimdaga/morning-press/internal/subscribers"
	"github.com/jimdaga/morning-press/internal/token"
)

var (
	ErrInvalidEmail = errors.New("invalid email format")
	ErrNotFound     = errors.New("user not found")
)

type Store struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewStore(db *gorm.DB, logger *slog.Logger) *Store {
	return &Store{db: db, logger: logger}
}

// Register creates a reader account or, when the address already exists,
// refreshes the login timestamp and returns the existing account. The
// access token is stable across re-registrations. The bool reports
// whether the account already existed.
func (s *Store) Register(email, name string) (*models.User, bool, error) {
	email = subscribers.NormalizeEmail(email)
	if !subscribers.ValidEmail(email) {
		return nil, false, ErrInvalidEmail
	}
	name = strings.TrimSpace(name)

	var existing models.User
	err := s.db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		now := time.Now()
		updates := map[string]any{"last_login": now}
		if name != "" && name != existing.Name {
			updates["name"] = name
			existing.Name = name
		}
		if err := s.db.Model(&existing).Updates(updates).Error; err != nil {
			return nil, false, err
		}
		existing.LastLogin = &now
		return &existing, true, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	tok, err := token.New()
	if err != nil {
		return nil, false, err
	}
	now := time.Now()
	user := models.User{
		Email:            email,
		Name:             name,
		RegistrationDate: now,
		LastLogin:        &now,
		AccessToken:      tok,
		Active:           true,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, false, err
	}
	return &user, false, nil
}

// Login looks up an active reader by address and stamps the login time.
func (s *Store) Login(email string) (*models.User, error) {
	email = subscribers.NormalizeEmail(email)

	var user models.User
	err := s.db.Where("email = ? AND active = ?", email, true).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.db.Model(&user).Update("last_login", now).Error; err != nil {
		return nil, err
	}
	user.LastLogin = &now
	return &user, nil
}

// LogView records that a reader opened an edition. Failures are logged
// and swallowed; view tracking never blocks reading.
func (s *Store) LogView(userID uint, newsletterDate string) {
	view := models.NewsletterView{
		UserID:         userID,
		NewsletterDate: newsletterDate,
		ViewedAt:       time.Now(),
	}
	if err := s.db.Create(&view).Error; err != nil {
		s.logger.Error("Failed to record newsletter view", "user_id", userID, "error", err)
	}
}

// ActiveUsers returns all active readers, newest first.
func (s *Store) ActiveUsers() ([]models.User, error) {
	var users []models.User
	err := s.db.Where("active = ?", true).Order("registration_date desc").Find(&users).Error
	return users, err
}
