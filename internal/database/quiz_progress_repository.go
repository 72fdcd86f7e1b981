package database

import (
	"context"
	"fmt"

	"github.com/kevinblo/fwords-backend/pkg/models"
)

// QuizProgressRepository handles database operations for quiz attempts
type QuizProgressRepository struct{}

// NewQuizProgressRepository creates a new repository instance
func NewQuizProgressRepository() *QuizProgressRepository {
	return &QuizProgressRepository{}
}

// Create inserts a new quiz attempt
func (r *QuizProgressRepository) Create(ctx context.Context, quiz *models.QuizProgress) error {
	query := `
		INSERT INTO quiz_progress (user_id, language_id, correct_answers, total_questions)
		VALUES ($1, $2, $3, $4)
	`
	id, err := insertReturningID(ctx, query,
		quiz.UserID, quiz.LanguageID, quiz.CorrectAnswers, quiz.TotalQuestions)
	if err != nil {
		return fmt.Errorf("failed to create quiz progress: %v", err)
	}
	quiz.ID = id
	return nil
}

// GetByID returns a quiz attempt owned by the given user
func (r *QuizProgressRepository) GetByID(ctx context.Context, userID, id int64) (*models.QuizProgress, error) {
	var quiz models.QuizProgress
	err := DB.GetContext(ctx, &quiz,
		"SELECT * FROM quiz_progress WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get quiz progress: %w", err)
	}
	return &quiz, nil
}

// List returns the user's quiz attempts, newest first. A non-empty
// languageCode limits results to that language.
func (r *QuizProgressRepository) List(ctx context.Context, userID int64, languageCode string) ([]models.QuizProgress, error) {
	query := "SELECT qp.* FROM quiz_progress qp WHERE qp.user_id = $1"
	args := []interface{}{userID}

	if languageCode != "" {
		args = append(args, languageCode)
		query += fmt.Sprintf(" AND qp.language_id IN (SELECT id FROM languages WHERE code = $%d)", len(args))
	}
	query += " ORDER BY qp.created_at DESC, qp.id DESC"

	var quizzes []models.QuizProgress
	if err := DB.SelectContext(ctx, &quizzes, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list quiz progress: %v", err)
	}
	return quizzes, nil
}

type quizStatsRow struct {
	LanguageID     int64 `db:"language_id"`
	TotalQuestions int   `db:"total_questions"`
	TotalCorrect   int   `db:"total_correct"`
	QuizCount      int   `db:"quiz_count"`
}

// Stats aggregates the user's quiz attempts per language, busiest language
// first. Accuracy is computed over the summed answer counts. A non-empty
// languageCode limits the aggregation to that language.
func (r *QuizProgressRepository) Stats(ctx context.Context, userID int64, languageCode string) ([]models.QuizLanguageStats, error) {
	query := `
		SELECT
			language_id,
			COALESCE(SUM(total_questions), 0) AS total_questions,
			COALESCE(SUM(correct_answers), 0) AS total_correct,
			COUNT(*) AS quiz_count
		FROM quiz_progress
		WHERE user_id = $1
	`
	args := []interface{}{userID}
	if languageCode != "" {
		args = append(args, languageCode)
		query += fmt.Sprintf(" AND language_id IN (SELECT id FROM languages WHERE code = $%d)", len(args))
	}
	query += " GROUP BY language_id ORDER BY total_questions DESC"

	var rows []quizStatsRow
	if err := DB.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to get quiz stats: %v", err)
	}

	languageRepo := NewLanguageRepository()
	stats := make([]models.QuizLanguageStats, 0, len(rows))
	for _, row := range rows {
		language, err := languageRepo.GetByID(ctx, row.LanguageID)
		if err != nil {
			return nil, err
		}
		entry := models.QuizLanguageStats{
			Language:       *language,
			TotalQuestions: row.TotalQuestions,
			QuizCount:      row.QuizCount,
		}
		if row.TotalQuestions > 0 {
			entry.AverageAccuracy = models.Round2(float64(row.TotalCorrect) / float64(row.TotalQuestions) * 100)
		}
		stats = append(stats, entry)
	}
	return stats, nil
}
