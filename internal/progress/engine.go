package progress

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/kevinblo/fwords-backend/internal/database"
	"github.com/kevinblo/fwords-backend/pkg/logger"
	"github.com/kevinblo/fwords-backend/pkg/models"
)

// Engine implements the word progress operations: creating and updating
// per-word progress rows and keeping the per-language aggregates in sync.
type Engine struct {
	progressRepo *database.WordsProgressRepository
	wordRepo     *database.WordRepository
	languageRepo *database.LanguageRepository
	recalculator *Recalculator
	log          *logger.Logger
}

// NewEngine creates an engine backed by the global database connection
func NewEngine(log *logger.Logger) *Engine {
	return &Engine{
		progressRepo: database.NewWordsProgressRepository(),
		wordRepo:     database.NewWordRepository(),
		languageRepo: database.NewLanguageRepository(),
		recalculator: NewRecalculator(log),
		log:          log,
	}
}

// Recalculator exposes the engine's recalculator, shared with the level
// update path and the nightly job.
func (e *Engine) Recalculator() *Recalculator {
	return e.recalculator
}

// ReviewInput carries one review submission. Optional fields keep their
// current (or default) value when nil.
type ReviewInput struct {
	WordID           int64      `json:"word_id"`
	TargetLanguageID int64      `json:"target_language_id"`
	Correct          bool       `json:"correct"`
	Status           *string    `json:"status"`
	Interval         *int       `json:"interval"`
	NextReview       *time.Time `json:"next_review"`
}

// UpdateInput carries a review applied to an existing progress row.
type UpdateInput struct {
	Correct    bool       `json:"correct"`
	Status     *string    `json:"status"`
	Interval   *int       `json:"interval"`
	NextReview *time.Time `json:"next_review"`
}

// today returns the current date in storage format.
func today() string {
	return time.Now().Format(models.DateLayout)
}

// Get returns one progress row of the user
func (e *Engine) Get(ctx context.Context, userID, id int64) (*models.WordsProgress, error) {
	row, err := e.progressRepo.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return row, nil
}

// List returns the user's progress rows matching the filter
func (e *Engine) List(ctx context.Context, userID int64, filter database.ProgressFilter) ([]models.WordsProgress, error) {
	if filter.Status != "" && !models.ValidStatus(filter.Status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidArgument, filter.Status)
	}
	return e.progressRepo.List(ctx, userID, filter)
}

// SubmitReview records a review for a (word, target language) pair, creating
// the progress row on first contact. The row's date_learned is stamped to
// the current date on every submission, so it tracks the most recent
// activity rather than the first.
func (e *Engine) SubmitReview(ctx context.Context, userID int64, input ReviewInput) (*models.WordsProgress, error) {
	if input.Status != nil && !models.ValidStatus(*input.Status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidArgument, *input.Status)
	}
	if input.Interval != nil && *input.Interval < 1 {
		return nil, fmt.Errorf("%w: interval must be positive", ErrInvalidArgument)
	}

	word, err := e.wordRepo.GetActiveByID(ctx, input.WordID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: word %d", ErrInvalidReference, input.WordID)
		}
		return nil, err
	}
	if _, err := e.languageRepo.GetEnabledByID(ctx, input.TargetLanguageID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: language %d", ErrInvalidReference, input.TargetLanguageID)
		}
		return nil, err
	}
	if word.LanguageID != input.TargetLanguageID {
		return nil, fmt.Errorf("%w: word %d does not belong to language %d",
			ErrInvalidReference, input.WordID, input.TargetLanguageID)
	}

	row, err := e.progressRepo.GetByTriple(ctx, userID, input.WordID, input.TargetLanguageID)
	created := false
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		row = &models.WordsProgress{
			UserID:           userID,
			WordID:           input.WordID,
			TargetLanguageID: input.TargetLanguageID,
			Status:           models.StatusNew,
			Interval:         1,
		}
		created = true
	}

	applyReview(row, UpdateInput{
		Correct:    input.Correct,
		Status:     input.Status,
		Interval:   input.Interval,
		NextReview: input.NextReview,
	})

	if created {
		err = e.progressRepo.Create(ctx, row)
	} else {
		err = e.progressRepo.Update(ctx, row)
	}
	if err != nil {
		return nil, err
	}

	e.recalculator.Trigger(ctx, userID, row.TargetLanguageID)
	return row, nil
}

// UpdateByID records a review against an existing progress row of the user.
// Status transitions are unrestricted, regressions included. The
// date_learned field is stamped to the current date on every update.
func (e *Engine) UpdateByID(ctx context.Context, userID, id int64, input UpdateInput) (*models.WordsProgress, error) {
	if input.Status != nil && !models.ValidStatus(*input.Status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidArgument, *input.Status)
	}
	if input.Interval != nil && *input.Interval < 1 {
		return nil, fmt.Errorf("%w: interval must be positive", ErrInvalidArgument)
	}

	row, err := e.progressRepo.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	applyReview(row, input)

	if err := e.progressRepo.Update(ctx, row); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	e.recalculator.Trigger(ctx, userID, row.TargetLanguageID)
	return row, nil
}

// EnrollLanguage creates the per-language aggregate for a user up front, so
// the language shows up in their progress list before the first review. The
// call is idempotent: an existing aggregate is returned as is, apart from an
// optional level change.
func (e *Engine) EnrollLanguage(ctx context.Context, userID, languageID int64, level *string) (*models.LanguageProgress, error) {
	if _, err := e.languageRepo.GetEnabledByID(ctx, languageID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: language %d", ErrInvalidReference, languageID)
		}
		return nil, err
	}

	aggregate, err := e.recalculator.langRepo.GetOrCreate(ctx, userID, languageID)
	if err != nil {
		return nil, err
	}
	if level != nil {
		return e.recalculator.SetLevel(ctx, userID, aggregate.ID, *level)
	}

	e.recalculator.Trigger(ctx, userID, languageID)
	return e.recalculator.langRepo.GetByID(ctx, userID, aggregate.ID)
}

// Delete removes a progress row of the user
func (e *Engine) Delete(ctx context.Context, userID, id int64) error {
	row, err := e.progressRepo.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if err := e.progressRepo.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	e.recalculator.Trigger(ctx, userID, row.TargetLanguageID)
	return nil
}

// applyReview applies one review to a row: the review counter always
// advances, the correct counter only for correct answers, and date_learned
// moves to today.
func applyReview(row *models.WordsProgress, input UpdateInput) {
	row.ReviewCount++
	if input.Correct {
		row.CorrectCount++
	}
	if input.Status != nil {
		row.Status = *input.Status
	}
	if input.Interval != nil {
		row.Interval = *input.Interval
	}
	if input.NextReview != nil {
		row.NextReview = input.NextReview
	}
	date := today()
	row.DateLearned = &date
}

// BulkEntry is one item of a bulk update request.
type BulkEntry struct {
	ID         int64      `json:"id"`
	Correct    bool       `json:"correct"`
	Status     *string    `json:"status"`
	Interval   *int       `json:"interval"`
	NextReview *time.Time `json:"next_review"`
}

// BulkError reports one failed entry together with the data that failed.
type BulkError struct {
	Error string    `json:"error"`
	Data  BulkEntry `json:"data"`
}

// BulkResult summarizes a bulk update: entries that failed are reported,
// entries that succeeded stay committed.
type BulkResult struct {
	UpdatedCount   int         `json:"updated_count"`
	TotalRequested int         `json:"total_requested"`
	Errors         []BulkError `json:"errors"`
}

// BulkUpdate applies independent updates to many progress rows. A failing
// entry does not roll back the others.
func (e *Engine) BulkUpdate(ctx context.Context, userID int64, entries []BulkEntry) *BulkResult {
	result := &BulkResult{
		TotalRequested: len(entries),
		Errors:         []BulkError{},
	}
	for _, entry := range entries {
		_, err := e.UpdateByID(ctx, userID, entry.ID, UpdateInput{
			Correct:    entry.Correct,
			Status:     entry.Status,
			Interval:   entry.Interval,
			NextReview: entry.NextReview,
		})
		if err != nil {
			result.Errors = append(result.Errors, BulkError{Error: err.Error(), Data: entry})
			continue
		}
		result.UpdatedCount++
	}
	return result
}
