package progress

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/kevinblo/fwords-backend/internal/database"
	"github.com/kevinblo/fwords-backend/pkg/logger"
	"github.com/kevinblo/fwords-backend/pkg/models"
)

// Recalculator maintains the learned-words percentage and count on the
// per-language aggregates. It is invoked explicitly after every progress
// write instead of hanging off database triggers.
type Recalculator struct {
	progressRepo *database.WordsProgressRepository
	langRepo     *database.LanguageProgressRepository
	wordRepo     *database.WordRepository
	log          *logger.Logger
}

// NewRecalculator creates a recalculator backed by the global database
// connection
func NewRecalculator(log *logger.Logger) *Recalculator {
	return &Recalculator{
		progressRepo: database.NewWordsProgressRepository(),
		langRepo:     database.NewLanguageProgressRepository(),
		wordRepo:     database.NewWordRepository(),
		log:          log,
	}
}

// Recalculate refreshes the aggregate for one (user, language) pair.
//
// The denominator is the number of active words of the language within the
// difficulty tiers unlocked by the user's level. The numerator counts all of
// the user's learned and mastered words for the language, regardless of
// tier, so words learned at a higher level keep counting after a level
// change. The percentage is capped at 100.
func (r *Recalculator) Recalculate(ctx context.Context, userID, languageID int64) error {
	aggregate, err := r.langRepo.GetOrCreate(ctx, userID, languageID)
	if err != nil {
		return fmt.Errorf("failed to load language progress: %v", err)
	}

	tiers := models.TiersForLevel(aggregate.Level)
	available, err := r.wordRepo.CountAvailable(ctx, languageID, tiers)
	if err != nil {
		return err
	}
	learned, err := r.progressRepo.CountLearnedMastered(ctx, userID, languageID)
	if err != nil {
		return err
	}

	var percentage float64
	if available > 0 {
		percentage = models.Round2(float64(learned) / float64(available) * 100)
		if percentage > 100 {
			percentage = 100
		}
	}
	return r.langRepo.UpdateStats(ctx, userID, languageID, percentage, learned)
}

// Trigger runs Recalculate and logs any failure. The word-level write that
// caused the recalculation always stands.
func (r *Recalculator) Trigger(ctx context.Context, userID, languageID int64) {
	if err := r.Recalculate(ctx, userID, languageID); err != nil {
		r.log.Error("language progress recalculation failed",
			"user_id", userID, "language_id", languageID, "error", err)
	}
}

// SetLevel changes the level of an aggregate owned by the user and
// recalculates it, since the level decides the denominator.
func (r *Recalculator) SetLevel(ctx context.Context, userID, id int64, level string) (*models.LanguageProgress, error) {
	if !models.ValidLevel(level) {
		return nil, fmt.Errorf("%w: unknown level %q", ErrInvalidArgument, level)
	}

	aggregate, err := r.langRepo.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := r.langRepo.UpdateLevel(ctx, userID, id, level); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	r.Trigger(ctx, userID, aggregate.LanguageID)

	updated, err := r.langRepo.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return updated, nil
}

// ReconcileAll recalculates every aggregate that has word progress. Run by
// the nightly job to repair drift from partially failed triggers.
func (r *Recalculator) ReconcileAll(ctx context.Context) error {
	pairs, err := r.progressRepo.UserLanguagePairs(ctx)
	if err != nil {
		return err
	}
	for _, pair := range pairs {
		r.Trigger(ctx, pair.UserID, pair.LanguageID)
	}
	r.log.Info("language progress reconciliation finished", "pairs", len(pairs))
	return nil
}
