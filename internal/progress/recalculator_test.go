package progress

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kevinblo/fwords-backend/internal/database"
	"github.com/kevinblo/fwords-backend/pkg/logger"
	"github.com/kevinblo/fwords-backend/pkg/models"
)

func learn(t *testing.T, ctx context.Context, engine *Engine, userID, wordID, languageID int64) {
	t.Helper()
	_, err := engine.SubmitReview(ctx, userID, ReviewInput{
		WordID:           wordID,
		TargetLanguageID: languageID,
		Status:           strPtr(models.StatusLearned),
	})
	require.NoError(t, err)
}

func TestRecalculatePercentage(t *testing.T) {
	ctx := setupTest(t)
	engine := NewEngine(logger.NewNop())

	language := seedLanguage(t, ctx, "en")
	user := seedUser(t, ctx, "a@example.com")
	words := []*models.Word{
		seedWord(t, ctx, "house", language.ID, models.DifficultyBeginner),
		seedWord(t, ctx, "tree", language.ID, models.DifficultyBeginner),
		seedWord(t, ctx, "water", language.ID, models.DifficultyBeginner),
		seedWord(t, ctx, "fire", language.ID, models.DifficultyBeginner),
	}

	learn(t, ctx, engine, user.ID, words[0].ID, language.ID)

	aggregate, err := database.NewLanguageProgressRepository().GetByUserAndLanguage(ctx, user.ID, language.ID)
	require.NoError(t, err)
	assert.Equal(t, models.LevelA1, aggregate.Level)
	assert.Equal(t, 25.0, aggregate.LearnedWords)
	assert.Equal(t, 1, aggregate.LearnedWordsCount)

	learn(t, ctx, engine, user.ID, words[1].ID, language.ID)
	learn(t, ctx, engine, user.ID, words[2].ID, language.ID)

	aggregate, err = database.NewLanguageProgressRepository().GetByUserAndLanguage(ctx, user.ID, language.ID)
	require.NoError(t, err)
	assert.Equal(t, 75.0, aggregate.LearnedWords)
	assert.Equal(t, 3, aggregate.LearnedWordsCount)
}

func TestRecalculateCountsLearnedOutsideLevelTiers(t *testing.T) {
	ctx := setupTest(t)
	engine := NewEngine(logger.NewNop())

	language := seedLanguage(t, ctx, "en")
	user := seedUser(t, ctx, "a@example.com")

	// Two beginner words make the A1 denominator; the advanced words are
	// outside the level's tiers but still count once learned.
	beginner1 := seedWord(t, ctx, "house", language.ID, models.DifficultyBeginner)
	seedWord(t, ctx, "tree", language.ID, models.DifficultyBeginner)
	advanced1 := seedWord(t, ctx, "ubiquitous", language.ID, models.DifficultyAdvanced)
	advanced2 := seedWord(t, ctx, "ephemeral", language.ID, models.DifficultyAdvanced)

	learn(t, ctx, engine, user.ID, beginner1.ID, language.ID)
	learn(t, ctx, engine, user.ID, advanced1.ID, language.ID)
	learn(t, ctx, engine, user.ID, advanced2.ID, language.ID)

	aggregate, err := database.NewLanguageProgressRepository().GetByUserAndLanguage(ctx, user.ID, language.ID)
	require.NoError(t, err)
	// 3 learned over 2 available would be 150%, capped at 100.
	assert.Equal(t, 100.0, aggregate.LearnedWords)
	assert.Equal(t, 3, aggregate.LearnedWordsCount)
}

func TestRecalculateZeroDenominator(t *testing.T) {
	ctx := setupTest(t)
	engine := NewEngine(logger.NewNop())

	language := seedLanguage(t, ctx, "en")
	user := seedUser(t, ctx, "a@example.com")

	// Only advanced words exist, so an A1 user has nothing available.
	advanced := seedWord(t, ctx, "ubiquitous", language.ID, models.DifficultyAdvanced)
	learn(t, ctx, engine, user.ID, advanced.ID, language.ID)

	aggregate, err := database.NewLanguageProgressRepository().GetByUserAndLanguage(ctx, user.ID, language.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, aggregate.LearnedWords)
	assert.Equal(t, 1, aggregate.LearnedWordsCount)
}

func TestRecalculateMasteredCountsAsLearned(t *testing.T) {
	ctx := setupTest(t)
	engine := NewEngine(logger.NewNop())

	language := seedLanguage(t, ctx, "en")
	user := seedUser(t, ctx, "a@example.com")
	word := seedWord(t, ctx, "house", language.ID, models.DifficultyBeginner)
	seedWord(t, ctx, "tree", language.ID, models.DifficultyBeginner)

	_, err := engine.SubmitReview(ctx, user.ID, ReviewInput{
		WordID:           word.ID,
		TargetLanguageID: language.ID,
		Status:           strPtr(models.StatusMastered),
	})
	require.NoError(t, err)

	aggregate, err := database.NewLanguageProgressRepository().GetByUserAndLanguage(ctx, user.ID, language.ID)
	require.NoError(t, err)
	assert.Equal(t, 50.0, aggregate.LearnedWords)
	assert.Equal(t, 1, aggregate.LearnedWordsCount)
}

func TestRecalculateRoundsToTwoDecimals(t *testing.T) {
	ctx := setupTest(t)
	engine := NewEngine(logger.NewNop())

	language := seedLanguage(t, ctx, "en")
	user := seedUser(t, ctx, "a@example.com")
	words := []*models.Word{
		seedWord(t, ctx, "house", language.ID, models.DifficultyBeginner),
		seedWord(t, ctx, "tree", language.ID, models.DifficultyBeginner),
		seedWord(t, ctx, "water", language.ID, models.DifficultyBeginner),
	}

	learn(t, ctx, engine, user.ID, words[0].ID, language.ID)

	aggregate, err := database.NewLanguageProgressRepository().GetByUserAndLanguage(ctx, user.ID, language.ID)
	require.NoError(t, err)
	assert.Equal(t, 33.33, aggregate.LearnedWords)
}

func TestSetLevelRecalculates(t *testing.T) {
	ctx := setupTest(t)
	engine := NewEngine(logger.NewNop())
	recalculator := engine.Recalculator()

	language := seedLanguage(t, ctx, "en")
	user := seedUser(t, ctx, "a@example.com")
	beginner := seedWord(t, ctx, "house", language.ID, models.DifficultyBeginner)
	seedWord(t, ctx, "ubiquitous", language.ID, models.DifficultyAdvanced)

	learn(t, ctx, engine, user.ID, beginner.ID, language.ID)

	aggregate, err := database.NewLanguageProgressRepository().GetByUserAndLanguage(ctx, user.ID, language.ID)
	require.NoError(t, err)
	assert.Equal(t, 100.0, aggregate.LearnedWords)

	// C1 unlocks the advanced tier, doubling the denominator.
	updated, err := recalculator.SetLevel(ctx, user.ID, aggregate.ID, models.LevelC1)
	require.NoError(t, err)
	assert.Equal(t, models.LevelC1, updated.Level)
	assert.Equal(t, 50.0, updated.LearnedWords)
}

func TestSetLevelValidation(t *testing.T) {
	ctx := setupTest(t)
	engine := NewEngine(logger.NewNop())
	recalculator := engine.Recalculator()

	language := seedLanguage(t, ctx, "en")
	user := seedUser(t, ctx, "a@example.com")
	other := seedUser(t, ctx, "b@example.com")
	word := seedWord(t, ctx, "house", language.ID, models.DifficultyBeginner)

	learn(t, ctx, engine, user.ID, word.ID, language.ID)
	aggregate, err := database.NewLanguageProgressRepository().GetByUserAndLanguage(ctx, user.ID, language.ID)
	require.NoError(t, err)

	_, err = recalculator.SetLevel(ctx, user.ID, aggregate.ID, "Z9")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = recalculator.SetLevel(ctx, other.ID, aggregate.ID, models.LevelB1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReconcileAll(t *testing.T) {
	ctx := setupTest(t)
	engine := NewEngine(logger.NewNop())

	language := seedLanguage(t, ctx, "en")
	user := seedUser(t, ctx, "a@example.com")
	word := seedWord(t, ctx, "house", language.ID, models.DifficultyBeginner)
	learn(t, ctx, engine, user.ID, word.ID, language.ID)

	// Corrupt the aggregate, then reconcile.
	langRepo := database.NewLanguageProgressRepository()
	require.NoError(t, langRepo.UpdateStats(ctx, user.ID, language.ID, 7.0, 42))

	require.NoError(t, engine.Recalculator().ReconcileAll(ctx))

	aggregate, err := langRepo.GetByUserAndLanguage(ctx, user.ID, language.ID)
	require.NoError(t, err)
	assert.Equal(t, 100.0, aggregate.LearnedWords)
	assert.Equal(t, 1, aggregate.LearnedWordsCount)
}
