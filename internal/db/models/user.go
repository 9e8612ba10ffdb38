package models

import "time"

// User is a registered account. Email is the login key; the bcrypt hash
// never leaves the server (json:"-" keeps it out of every response view).
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex" json:"email"`
	PasswordHash string    `json:"-"`
	GoogleAPIKey *string   `json:"google_api_key,omitempty"`
	GroqAPIKey   *string   `json:"groq_api_key,omitempty"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}
