package models

import "time"

// Word learning statuses. Transitions are unrestricted: a client may move a
// word from any status to any other, including regressions.
const (
	StatusNew      = "new"
	StatusLearning = "learning"
	StatusLearned  = "learned"
	StatusMastered = "mastered"
)

// DateLayout is the storage format for date-only fields.
const DateLayout = "2006-01-02"

// WordsProgress tracks a user's progress with a single word, unique per
// (user, word, target_language).
type WordsProgress struct {
	ID               int64      `json:"id" db:"id"`
	UserID           int64      `json:"user_id" db:"user_id"`
	WordID           int64      `json:"word_id" db:"word_id"`
	TargetLanguageID int64      `json:"target_language_id" db:"target_language_id"`
	Status           string     `json:"status" db:"status"`
	Interval         int        `json:"interval" db:"interval"` // days until next review
	NextReview       *time.Time `json:"next_review" db:"next_review"`
	ReviewCount      int        `json:"review_count" db:"review_count"`
	CorrectCount     int        `json:"correct_count" db:"correct_count"`
	DateLearned      *string    `json:"date_learned" db:"date_learned"` // YYYY-MM-DD, stamped on every save
	CreatedAt        time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at" db:"updated_at"`
}

// ValidStatus reports whether s is one of the four word statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusNew, StatusLearning, StatusLearned, StatusMastered:
		return true
	}
	return false
}
