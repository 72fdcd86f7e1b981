package models

import (
	"math"
	"time"
)

// QuizProgress records one quiz attempt. Rows are immutable after creation
// and used only for statistics.
type QuizProgress struct {
	ID             int64     `json:"id" db:"id"`
	UserID         int64     `json:"user_id" db:"user_id"`
	LanguageID     int64     `json:"language_id" db:"language_id"`
	TotalQuestions int       `json:"total_questions" db:"total_questions"`
	CorrectAnswers int       `json:"correct_answers" db:"correct_answers"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// AccuracyPercentage returns the share of correct answers, rounded to two
// decimals. Zero when the quiz had no questions.
func (q *QuizProgress) AccuracyPercentage() float64 {
	if q.TotalQuestions == 0 {
		return 0.0
	}
	return Round2(float64(q.CorrectAnswers) / float64(q.TotalQuestions) * 100)
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
