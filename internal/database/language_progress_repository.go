package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/kevinblo/fwords-backend/pkg/models"
)

// LanguageProgressRepository handles database operations for per-language
// learning aggregates
type LanguageProgressRepository struct{}

// NewLanguageProgressRepository creates a new repository instance
func NewLanguageProgressRepository() *LanguageProgressRepository {
	return &LanguageProgressRepository{}
}

// List returns all language aggregates of the user
func (r *LanguageProgressRepository) List(ctx context.Context, userID int64) ([]models.LanguageProgress, error) {
	var progress []models.LanguageProgress
	err := DB.SelectContext(ctx, &progress,
		"SELECT * FROM language_progress WHERE user_id = $1 ORDER BY id", userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list language progress: %v", err)
	}
	return progress, nil
}

// GetByID returns an aggregate owned by the given user
func (r *LanguageProgressRepository) GetByID(ctx context.Context, userID, id int64) (*models.LanguageProgress, error) {
	var progress models.LanguageProgress
	err := DB.GetContext(ctx, &progress,
		"SELECT * FROM language_progress WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get language progress: %w", err)
	}
	return &progress, nil
}

// GetByUserAndLanguage returns the aggregate for one (user, language) pair
func (r *LanguageProgressRepository) GetByUserAndLanguage(ctx context.Context, userID, languageID int64) (*models.LanguageProgress, error) {
	var progress models.LanguageProgress
	err := DB.GetContext(ctx, &progress,
		"SELECT * FROM language_progress WHERE user_id = $1 AND language_id = $2",
		userID, languageID)
	if err != nil {
		return nil, fmt.Errorf("failed to get language progress: %w", err)
	}
	return &progress, nil
}

// GetOrCreate returns the aggregate for a (user, language) pair, creating it
// at level A1 when it does not exist yet
func (r *LanguageProgressRepository) GetOrCreate(ctx context.Context, userID, languageID int64) (*models.LanguageProgress, error) {
	progress, err := r.GetByUserAndLanguage(ctx, userID, languageID)
	if err == nil {
		return progress, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	created := &models.LanguageProgress{
		UserID:     userID,
		LanguageID: languageID,
		Level:      models.LevelA1,
	}
	if err := r.Create(ctx, created); err != nil {
		return nil, err
	}
	return created, nil
}

// Create inserts a new aggregate row
func (r *LanguageProgressRepository) Create(ctx context.Context, progress *models.LanguageProgress) error {
	query := `
		INSERT INTO language_progress (
			user_id, language_id, level, learned_words, learned_words_count,
			learned_phrases, learned_phrases_count
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	id, err := insertReturningID(ctx, query,
		progress.UserID,
		progress.LanguageID,
		progress.Level,
		progress.LearnedWords,
		progress.LearnedWordsCount,
		progress.LearnedPhrases,
		progress.LearnedPhrasesCount,
	)
	if err != nil {
		return fmt.Errorf("failed to create language progress: %v", err)
	}
	progress.ID = id
	return nil
}

// UpdateLevel changes the proficiency level of an aggregate owned by the
// given user
func (r *LanguageProgressRepository) UpdateLevel(ctx context.Context, userID, id int64, level string) error {
	result, err := DB.ExecContext(ctx, `
		UPDATE language_progress SET level = $1, updated_at = CURRENT_TIMESTAMP
		WHERE id = $2 AND user_id = $3
	`, level, id, userID)
	if err != nil {
		return fmt.Errorf("failed to update language progress level: %v", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %v", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// UpdateStats writes recalculated percentage and count values. Nothing else
// in the application reacts to this write, so recalculation cannot loop.
func (r *LanguageProgressRepository) UpdateStats(ctx context.Context, userID, languageID int64, learnedWords float64, learnedWordsCount int) error {
	_, err := DB.ExecContext(ctx, `
		UPDATE language_progress SET
			learned_words = $1,
			learned_words_count = $2,
			updated_at = CURRENT_TIMESTAMP
		WHERE user_id = $3 AND language_id = $4
	`, learnedWords, learnedWordsCount, userID, languageID)
	if err != nil {
		return fmt.Errorf("failed to update language progress stats: %v", err)
	}
	return nil
}

// Delete removes an aggregate owned by the given user
func (r *LanguageProgressRepository) Delete(ctx context.Context, userID, id int64) error {
	result, err := DB.ExecContext(ctx,
		"DELETE FROM language_progress WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete language progress: %v", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %v", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}
