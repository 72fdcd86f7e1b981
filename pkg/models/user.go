package models

import "time"

// User represents a registered account. Authentication is email-based.
type User struct {
	ID                  int64     `json:"id" db:"id"`
	Email               string    `json:"email" db:"email"`
	PasswordHash        string    `json:"-" db:"password_hash"`
	Name                string    `json:"name" db:"name"`
	IsActive            bool      `json:"is_active" db:"is_active"`
	IsEmailVerified     bool      `json:"is_email_verified" db:"is_email_verified"`
	InterfaceLanguageID *int64    `json:"interface_language_id" db:"interface_language_id"`
	NativeLanguageID    *int64    `json:"native_language_id" db:"native_language_id"`
	ActiveLanguageID    *int64    `json:"active_language_id" db:"active_language_id"`
	Notify              bool      `json:"notify" db:"notify"`
	CreatedAt           time.Time `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time `json:"updated_at" db:"updated_at"`
}

// ActivationToken is a one-shot email activation token, valid for 24 hours.
type ActivationToken struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"user_id" db:"user_id"`
	Token     string    `json:"token" db:"token"` // UUID
	IsUsed    bool      `json:"is_used" db:"is_used"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// IsExpired reports whether the token is older than ttl.
func (t *ActivationToken) IsExpired(ttl time.Duration) bool {
	return time.Now().After(t.CreatedAt.Add(ttl))
}
