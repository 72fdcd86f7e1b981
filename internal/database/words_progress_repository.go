package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/kevinblo/fwords-backend/pkg/models"
)

// WordsProgressRepository handles database operations for per-word
// learning progress. Every read and write is scoped by the owning user.
type WordsProgressRepository struct{}

// NewWordsProgressRepository creates a new repository instance
func NewWordsProgressRepository() *WordsProgressRepository {
	return &WordsProgressRepository{}
}

// ProgressFilter narrows down List results. Zero values mean "no filter".
type ProgressFilter struct {
	Status             string
	TargetLanguageCode string
	WordLanguageCode   string
	DueForReview       bool
}

// UserLanguagePair identifies one (user, target language) aggregate.
type UserLanguagePair struct {
	UserID     int64 `db:"user_id"`
	LanguageID int64 `db:"target_language_id"`
}

// GetByID returns a progress row owned by the given user
func (r *WordsProgressRepository) GetByID(ctx context.Context, userID, id int64) (*models.WordsProgress, error) {
	var progress models.WordsProgress
	err := DB.GetContext(ctx, &progress,
		"SELECT * FROM words_progress WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get words progress: %w", err)
	}
	return &progress, nil
}

// GetByTriple returns the progress row for a (user, word, target language)
// combination
func (r *WordsProgressRepository) GetByTriple(ctx context.Context, userID, wordID, targetLanguageID int64) (*models.WordsProgress, error) {
	var progress models.WordsProgress
	err := DB.GetContext(ctx, &progress,
		"SELECT * FROM words_progress WHERE user_id = $1 AND word_id = $2 AND target_language_id = $3",
		userID, wordID, targetLanguageID)
	if err != nil {
		return nil, fmt.Errorf("failed to get words progress: %w", err)
	}
	return &progress, nil
}

// List returns the user's progress rows matching the filter, most recently
// updated first
func (r *WordsProgressRepository) List(ctx context.Context, userID int64, filter ProgressFilter) ([]models.WordsProgress, error) {
	query := "SELECT wp.* FROM words_progress wp WHERE wp.user_id = $1"
	args := []interface{}{userID}

	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND wp.status = $%d", len(args))
	}
	if filter.TargetLanguageCode != "" {
		args = append(args, filter.TargetLanguageCode)
		query += fmt.Sprintf(" AND wp.target_language_id IN (SELECT id FROM languages WHERE code = $%d)", len(args))
	}
	if filter.WordLanguageCode != "" {
		args = append(args, filter.WordLanguageCode)
		query += fmt.Sprintf(" AND wp.word_id IN (SELECT w.id FROM words w JOIN languages l ON w.language_id = l.id WHERE l.code = $%d)", len(args))
	}
	if filter.DueForReview {
		query += " AND wp.next_review <= CURRENT_TIMESTAMP AND wp.status IN ('new', 'learning')"
	}
	query += " ORDER BY wp.updated_at DESC"

	var progress []models.WordsProgress
	if err := DB.SelectContext(ctx, &progress, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list words progress: %v", err)
	}
	return progress, nil
}

// Create inserts a new progress row
func (r *WordsProgressRepository) Create(ctx context.Context, progress *models.WordsProgress) error {
	query := `
		INSERT INTO words_progress (
			user_id, word_id, target_language_id, status, "interval",
			next_review, review_count, correct_count, date_learned
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	id, err := insertReturningID(ctx, query,
		progress.UserID,
		progress.WordID,
		progress.TargetLanguageID,
		progress.Status,
		progress.Interval,
		progress.NextReview,
		progress.ReviewCount,
		progress.CorrectCount,
		progress.DateLearned,
	)
	if err != nil {
		return fmt.Errorf("failed to create words progress: %v", err)
	}
	progress.ID = id
	return nil
}

// Update modifies an existing progress row owned by the given user
func (r *WordsProgressRepository) Update(ctx context.Context, progress *models.WordsProgress) error {
	query := `
		UPDATE words_progress SET
			status = $1,
			"interval" = $2,
			next_review = $3,
			review_count = $4,
			correct_count = $5,
			date_learned = $6,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $7 AND user_id = $8
	`
	result, err := DB.ExecContext(ctx, query,
		progress.Status,
		progress.Interval,
		progress.NextReview,
		progress.ReviewCount,
		progress.CorrectCount,
		progress.DateLearned,
		progress.ID,
		progress.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update words progress: %v", err)
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

// Delete removes a progress row owned by the given user
func (r *WordsProgressRepository) Delete(ctx context.Context, userID, id int64) error {
	result, err := DB.ExecContext(ctx,
		"DELETE FROM words_progress WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete words progress: %v", err)
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

// CountLearnedMastered counts the user's learned and mastered words for one
// target language, across all difficulty tiers.
func (r *WordsProgressRepository) CountLearnedMastered(ctx context.Context, userID, languageID int64) (int, error) {
	var count int
	err := DB.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM words_progress
		WHERE user_id = $1 AND target_language_id = $2 AND status IN ('learned', 'mastered')
	`, userID, languageID)
	if err != nil {
		return 0, fmt.Errorf("failed to count learned words: %v", err)
	}
	return count, nil
}

// statsWhere builds the WHERE clause shared by the statistics queries:
// rows with a date_learned inside [startDate, endDate], optionally limited
// to one target language.
func statsWhere(userID int64, startDate *string, endDate, languageCode string) (string, []interface{}) {
	clause := " WHERE wp.user_id = $1 AND wp.date_learned IS NOT NULL"
	args := []interface{}{userID}

	if startDate != nil {
		args = append(args, *startDate)
		clause += fmt.Sprintf(" AND wp.date_learned >= $%d", len(args))
	}
	args = append(args, endDate)
	clause += fmt.Sprintf(" AND wp.date_learned <= $%d", len(args))

	if languageCode != "" {
		args = append(args, languageCode)
		clause += fmt.Sprintf(" AND l.code = $%d", len(args))
	}
	return clause, args
}

const statusCountColumns = `
	COALESCE(SUM(CASE WHEN wp.status = 'new' THEN 1 ELSE 0 END), 0) AS new_count,
	COALESCE(SUM(CASE WHEN wp.status = 'learning' THEN 1 ELSE 0 END), 0) AS learning_count,
	COALESCE(SUM(CASE WHEN wp.status = 'learned' THEN 1 ELSE 0 END), 0) AS learned_count,
	COALESCE(SUM(CASE WHEN wp.status = 'mastered' THEN 1 ELSE 0 END), 0) AS mastered_count,
	COUNT(*) AS total_count`

// StatusCounts returns per-status counts of rows whose date_learned falls
// inside the window
func (r *WordsProgressRepository) StatusCounts(ctx context.Context, userID int64, startDate *string, endDate, languageCode string) (*models.StatusCounts, error) {
	where, args := statsWhere(userID, startDate, endDate, languageCode)
	query := "SELECT" + statusCountColumns +
		" FROM words_progress wp JOIN languages l ON wp.target_language_id = l.id" + where

	var counts models.StatusCounts
	if err := DB.GetContext(ctx, &counts, query, args...); err != nil {
		return nil, fmt.Errorf("failed to get status counts: %v", err)
	}
	return &counts, nil
}

// DailyBreakdown groups windowed rows by date_learned
func (r *WordsProgressRepository) DailyBreakdown(ctx context.Context, userID int64, startDate *string, endDate, languageCode string) ([]models.DailyStat, error) {
	where, args := statsWhere(userID, startDate, endDate, languageCode)
	query := "SELECT wp.date_learned," + statusCountColumns +
		" FROM words_progress wp JOIN languages l ON wp.target_language_id = l.id" + where +
		" GROUP BY wp.date_learned ORDER BY wp.date_learned"

	var stats []models.DailyStat
	if err := DB.SelectContext(ctx, &stats, query, args...); err != nil {
		return nil, fmt.Errorf("failed to get daily breakdown: %v", err)
	}
	return stats, nil
}

// LanguageBreakdown groups windowed rows by target language, biggest first
func (r *WordsProgressRepository) LanguageBreakdown(ctx context.Context, userID int64, startDate *string, endDate, languageCode string) ([]models.LanguageStat, error) {
	where, args := statsWhere(userID, startDate, endDate, languageCode)
	query := "SELECT l.code AS language_code, l.name_english AS language_name," + statusCountColumns +
		" FROM words_progress wp JOIN languages l ON wp.target_language_id = l.id" + where +
		" GROUP BY l.code, l.name_english ORDER BY total_count DESC"

	var stats []models.LanguageStat
	if err := DB.SelectContext(ctx, &stats, query, args...); err != nil {
		return nil, fmt.Errorf("failed to get language breakdown: %v", err)
	}
	return stats, nil
}

// LearnedLanguageBreakdown groups windowed rows by target language like
// LanguageBreakdown, but only counts rows that reached learned or mastered
// status. Languages whose window activity is all new or learning are absent.
func (r *WordsProgressRepository) LearnedLanguageBreakdown(ctx context.Context, userID int64, startDate *string, endDate string) ([]models.LanguageStat, error) {
	where, args := statsWhere(userID, startDate, endDate, "")
	where += " AND wp.status IN ('learned', 'mastered')"
	query := "SELECT l.code AS language_code, l.name_english AS language_name," + statusCountColumns +
		" FROM words_progress wp JOIN languages l ON wp.target_language_id = l.id" + where +
		" GROUP BY l.code, l.name_english ORDER BY total_count DESC"

	var stats []models.LanguageStat
	if err := DB.SelectContext(ctx, &stats, query, args...); err != nil {
		return nil, fmt.Errorf("failed to get learned language breakdown: %v", err)
	}
	return stats, nil
}

// UserLanguagePairs returns every distinct (user, target language) pair
// that has progress rows. Used by the nightly reconciliation job.
func (r *WordsProgressRepository) UserLanguagePairs(ctx context.Context) ([]UserLanguagePair, error) {
	var pairs []UserLanguagePair
	err := DB.SelectContext(ctx, &pairs,
		"SELECT DISTINCT user_id, target_language_id FROM words_progress")
	if err != nil {
		return nil, fmt.Errorf("failed to get user language pairs: %v", err)
	}
	return pairs, nil
}
