package models

import "time"

// Language represents a language available for learning
type Language struct {
	ID          int64     `json:"id" db:"id"`
	Code        string    `json:"code" db:"code"` // e.g. "en", "ru", "es"
	NameEnglish string    `json:"name_english" db:"name_english"`
	NameNative  string    `json:"name_native" db:"name_native"`
	Enabled     bool      `json:"enabled" db:"enabled"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
