package progress

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kevinblo/fwords-backend/internal/database"
	"github.com/kevinblo/fwords-backend/pkg/logger"
	"github.com/kevinblo/fwords-backend/pkg/models"
)

func setupTest(t *testing.T) context.Context {
	t.Helper()
	require.NoError(t, database.ConnectSQLite(":memory:"))
	t.Cleanup(func() { database.Close() })
	return context.Background()
}

func seedLanguage(t *testing.T, ctx context.Context, code string) *models.Language {
	t.Helper()
	language, err := database.NewLanguageRepository().GetOrCreateByCode(ctx, code, code)
	require.NoError(t, err)
	return language
}

func seedUser(t *testing.T, ctx context.Context, email string) *models.User {
	t.Helper()
	user := &models.User{Email: email, PasswordHash: "x", IsActive: true}
	require.NoError(t, database.NewUserRepository().Create(ctx, user))
	return user
}

func seedWord(t *testing.T, ctx context.Context, text string, languageID int64, difficulty string) *models.Word {
	t.Helper()
	pos, err := database.NewPartOfSpeechRepository().GetOrCreateByCode(ctx, "noun", "Noun")
	require.NoError(t, err)

	word := &models.Word{
		Word:            text,
		LanguageID:      languageID,
		PartOfSpeechID:  pos.ID,
		DifficultyLevel: difficulty,
		Active:          true,
	}
	require.NoError(t, database.NewWordRepository().Create(ctx, word))
	return word
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestSubmitReviewCreatesRow(t *testing.T) {
	ctx := setupTest(t)
	engine := NewEngine(logger.NewNop())

	language := seedLanguage(t, ctx, "en")
	user := seedUser(t, ctx, "a@example.com")
	word := seedWord(t, ctx, "house", language.ID, models.DifficultyBeginner)

	row, err := engine.SubmitReview(ctx, user.ID, ReviewInput{
		WordID:           word.ID,
		TargetLanguageID: language.ID,
		Correct:          true,
		Status:           strPtr(models.StatusLearning),
	})
	require.NoError(t, err)

	assert.NotZero(t, row.ID)
	assert.Equal(t, models.StatusLearning, row.Status)
	assert.Equal(t, 1, row.Interval)
	assert.Equal(t, 1, row.ReviewCount)
	assert.Equal(t, 1, row.CorrectCount)
	require.NotNil(t, row.DateLearned)
	assert.Equal(t, time.Now().Format(models.DateLayout), *row.DateLearned)
}

func TestReviewCountersTrackSubmissions(t *testing.T) {
	ctx := setupTest(t)
	engine := NewEngine(logger.NewNop())

	language := seedLanguage(t, ctx, "en")
	user := seedUser(t, ctx, "a@example.com")
	word := seedWord(t, ctx, "house", language.ID, models.DifficultyBeginner)

	outcomes := []bool{true, false, true, true, false}
	var row *models.WordsProgress
	for _, correct := range outcomes {
		var err error
		row, err = engine.SubmitReview(ctx, user.ID, ReviewInput{
			WordID:           word.ID,
			TargetLanguageID: language.ID,
			Correct:          correct,
		})
		require.NoError(t, err)
	}

	assert.Equal(t, 5, row.ReviewCount)
	assert.Equal(t, 3, row.CorrectCount)
}

func TestSubmitReviewReusesExistingRow(t *testing.T) {
	ctx := setupTest(t)
	engine := NewEngine(logger.NewNop())

	language := seedLanguage(t, ctx, "en")
	user := seedUser(t, ctx, "a@example.com")
	word := seedWord(t, ctx, "house", language.ID, models.DifficultyBeginner)

	first, err := engine.SubmitReview(ctx, user.ID, ReviewInput{
		WordID:           word.ID,
		TargetLanguageID: language.ID,
		Status:           strPtr(models.StatusNew),
	})
	require.NoError(t, err)

	second, err := engine.SubmitReview(ctx, user.ID, ReviewInput{
		WordID:           word.ID,
		TargetLanguageID: language.ID,
		Correct:          true,
		Status:           strPtr(models.StatusLearned),
	})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, models.StatusLearned, second.Status)
	assert.Equal(t, 2, second.ReviewCount)
	assert.Equal(t, 1, second.CorrectCount)
}

func TestSubmitReviewWordLanguageMismatch(t *testing.T) {
	ctx := setupTest(t)
	engine := NewEngine(logger.NewNop())

	english := seedLanguage(t, ctx, "en")
	spanish := seedLanguage(t, ctx, "es")
	user := seedUser(t, ctx, "a@example.com")
	word := seedWord(t, ctx, "house", english.ID, models.DifficultyBeginner)

	_, err := engine.SubmitReview(ctx, user.ID, ReviewInput{
		WordID:           word.ID,
		TargetLanguageID: spanish.ID,
	})
	assert.ErrorIs(t, err, ErrInvalidReference)
}

func TestSubmitReviewUnknownWord(t *testing.T) {
	ctx := setupTest(t)
	engine := NewEngine(logger.NewNop())

	language := seedLanguage(t, ctx, "en")
	user := seedUser(t, ctx, "a@example.com")

	_, err := engine.SubmitReview(ctx, user.ID, ReviewInput{
		WordID:           9999,
		TargetLanguageID: language.ID,
	})
	assert.ErrorIs(t, err, ErrInvalidReference)
}

func TestSubmitReviewInvalidStatus(t *testing.T) {
	ctx := setupTest(t)
	engine := NewEngine(logger.NewNop())

	language := seedLanguage(t, ctx, "en")
	user := seedUser(t, ctx, "a@example.com")
	word := seedWord(t, ctx, "house", language.ID, models.DifficultyBeginner)

	_, err := engine.SubmitReview(ctx, user.ID, ReviewInput{
		WordID:           word.ID,
		TargetLanguageID: language.ID,
		Status:           strPtr("forgotten"),
	})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = engine.SubmitReview(ctx, user.ID, ReviewInput{
		WordID:           word.ID,
		TargetLanguageID: language.ID,
		Interval:         intPtr(0),
	})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestUpdateStampsDateLearned(t *testing.T) {
	ctx := setupTest(t)
	engine := NewEngine(logger.NewNop())

	language := seedLanguage(t, ctx, "en")
	user := seedUser(t, ctx, "a@example.com")
	word := seedWord(t, ctx, "house", language.ID, models.DifficultyBeginner)

	row, err := engine.SubmitReview(ctx, user.ID, ReviewInput{
		WordID:           word.ID,
		TargetLanguageID: language.ID,
	})
	require.NoError(t, err)

	// Backdate, then touch an unrelated field: the date must move to today.
	old := "2020-01-01"
	row.DateLearned = &old
	require.NoError(t, database.NewWordsProgressRepository().Update(ctx, row))

	updated, err := engine.UpdateByID(ctx, user.ID, row.ID, UpdateInput{Correct: true})
	require.NoError(t, err)
	require.NotNil(t, updated.DateLearned)
	assert.Equal(t, time.Now().Format(models.DateLayout), *updated.DateLearned)
}

func TestUpdateAllowsAnyStatusTransition(t *testing.T) {
	ctx := setupTest(t)
	engine := NewEngine(logger.NewNop())

	language := seedLanguage(t, ctx, "en")
	user := seedUser(t, ctx, "a@example.com")
	word := seedWord(t, ctx, "house", language.ID, models.DifficultyBeginner)

	row, err := engine.SubmitReview(ctx, user.ID, ReviewInput{
		WordID:           word.ID,
		TargetLanguageID: language.ID,
		Status:           strPtr(models.StatusMastered),
	})
	require.NoError(t, err)

	updated, err := engine.UpdateByID(ctx, user.ID, row.ID, UpdateInput{Status: strPtr(models.StatusNew)})
	require.NoError(t, err)
	assert.Equal(t, models.StatusNew, updated.Status)
}

func TestUpdateOtherUsersRowIsNotFound(t *testing.T) {
	ctx := setupTest(t)
	engine := NewEngine(logger.NewNop())

	language := seedLanguage(t, ctx, "en")
	owner := seedUser(t, ctx, "owner@example.com")
	other := seedUser(t, ctx, "other@example.com")
	word := seedWord(t, ctx, "house", language.ID, models.DifficultyBeginner)

	row, err := engine.SubmitReview(ctx, owner.ID, ReviewInput{
		WordID:           word.ID,
		TargetLanguageID: language.ID,
	})
	require.NoError(t, err)

	_, err = engine.UpdateByID(ctx, other.ID, row.ID, UpdateInput{Status: strPtr(models.StatusLearned)})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = engine.Get(ctx, other.ID, row.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete(t *testing.T) {
	ctx := setupTest(t)
	engine := NewEngine(logger.NewNop())

	language := seedLanguage(t, ctx, "en")
	user := seedUser(t, ctx, "a@example.com")
	word := seedWord(t, ctx, "house", language.ID, models.DifficultyBeginner)

	row, err := engine.SubmitReview(ctx, user.ID, ReviewInput{
		WordID:           word.ID,
		TargetLanguageID: language.ID,
	})
	require.NoError(t, err)

	require.NoError(t, engine.Delete(ctx, user.ID, row.ID))
	_, err = engine.Get(ctx, user.ID, row.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, engine.Delete(ctx, user.ID, row.ID), ErrNotFound)
}

func TestBulkUpdatePartialFailure(t *testing.T) {
	ctx := setupTest(t)
	engine := NewEngine(logger.NewNop())

	language := seedLanguage(t, ctx, "en")
	user := seedUser(t, ctx, "a@example.com")
	first := seedWord(t, ctx, "house", language.ID, models.DifficultyBeginner)
	second := seedWord(t, ctx, "tree", language.ID, models.DifficultyBeginner)

	rowA, err := engine.SubmitReview(ctx, user.ID, ReviewInput{WordID: first.ID, TargetLanguageID: language.ID})
	require.NoError(t, err)
	rowB, err := engine.SubmitReview(ctx, user.ID, ReviewInput{WordID: second.ID, TargetLanguageID: language.ID})
	require.NoError(t, err)

	result := engine.BulkUpdate(ctx, user.ID, []BulkEntry{
		{ID: rowA.ID, Status: strPtr(models.StatusLearned)},
		{ID: 9999, Status: strPtr(models.StatusLearned)},
		{ID: rowB.ID, Status: strPtr(models.StatusMastered)},
	})

	assert.Equal(t, 2, result.UpdatedCount)
	assert.Equal(t, 3, result.TotalRequested)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, int64(9999), result.Errors[0].Data.ID)
	assert.NotEmpty(t, result.Errors[0].Error)

	// Successful entries stay committed despite the failure.
	updated, err := engine.Get(ctx, user.ID, rowA.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusLearned, updated.Status)
}

func TestListFiltersByStatus(t *testing.T) {
	ctx := setupTest(t)
	engine := NewEngine(logger.NewNop())

	language := seedLanguage(t, ctx, "en")
	user := seedUser(t, ctx, "a@example.com")
	first := seedWord(t, ctx, "house", language.ID, models.DifficultyBeginner)
	second := seedWord(t, ctx, "tree", language.ID, models.DifficultyBeginner)

	_, err := engine.SubmitReview(ctx, user.ID, ReviewInput{
		WordID: first.ID, TargetLanguageID: language.ID, Status: strPtr(models.StatusLearned),
	})
	require.NoError(t, err)
	_, err = engine.SubmitReview(ctx, user.ID, ReviewInput{
		WordID: second.ID, TargetLanguageID: language.ID, Status: strPtr(models.StatusLearning),
	})
	require.NoError(t, err)

	rows, err := engine.List(ctx, user.ID, database.ProgressFilter{Status: models.StatusLearned})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, first.ID, rows[0].WordID)

	_, err = engine.List(ctx, user.ID, database.ProgressFilter{Status: "bogus"})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}
