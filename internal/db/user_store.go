package db

import (
	"errors"
	"strings"

	"github.com/lans/llm-answer-watcher/internal/db/models"
	"gorm.io/gorm"
)

// ErrEmailTaken is returned by CreateUser when the email is already registered.
// The unique index on users.email enforces this inside the insert itself, so
// concurrent registrations for the same email cannot both succeed.
var ErrEmailTaken = errors.New("email already registered")

// UserStore is the persistence boundary for accounts.
type UserStore struct {
	db *gorm.DB
}

// NewUserStore wraps an opened database handle.
func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

// FindByEmail returns the account for an email, or nil when none exists.
func (s *UserStore) FindByEmail(email string) (*models.User, error) {
	var user models.User
	err := s.db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser inserts a new account. A duplicate email maps to ErrEmailTaken.
func (s *UserStore) CreateUser(email, passwordHash string) (*models.User, error) {
	user := models.User{
		Email:        email,
		PasswordHash: passwordHash,
	}
	if err := s.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "UNIQUE constraint") {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return &user, nil
}

// UpdateAPIKeys overwrites a stored provider key only when a non-empty
// replacement is supplied; a nil or empty argument preserves the old value.
// Returns nil when the account no longer exists.
func (s *UserStore) UpdateAPIKeys(userID uint, googleKey, groqKey *string) (*models.User, error) {
	var user models.User
	err := s.db.First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	changed := false
	if googleKey != nil && *googleKey != "" {
		user.GoogleAPIKey = googleKey
		changed = true
	}
	if groqKey != nil && *groqKey != "" {
		user.GroqAPIKey = groqKey
		changed = true
	}
	if !changed {
		return &user, nil
	}

	if err := s.db.Save(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
