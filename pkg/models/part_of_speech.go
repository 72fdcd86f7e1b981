package models

import "time"

// PartOfSpeech represents a grammatical category (noun, verb, ...)
type PartOfSpeech struct {
	ID        int64     `json:"id" db:"id"`
	Code      string    `json:"code" db:"code"` // e.g. "noun", "verb"
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
