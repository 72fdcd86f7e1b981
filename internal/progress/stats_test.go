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

func TestWindow(t *testing.T) {
	// Wednesday, July 10th 2024.
	now := time.Date(2024, 7, 10, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		period string
		start  *string
		end    string
	}{
		{period: PeriodToday, start: strPtr("2024-07-10"), end: "2024-07-10"},
		{period: PeriodWeek, start: strPtr("2024-07-08"), end: "2024-07-10"},
		{period: PeriodMonth, start: strPtr("2024-07-01"), end: "2024-07-10"},
		{period: PeriodYear, start: strPtr("2024-01-01"), end: "2024-07-10"},
		{period: PeriodAll, start: nil, end: "2024-07-10"},
	}
	for _, tc := range tests {
		t.Run(tc.period, func(t *testing.T) {
			start, end, err := window(tc.period, now)
			require.NoError(t, err)
			assert.Equal(t, tc.end, end)
			if tc.start == nil {
				assert.Nil(t, start)
			} else {
				require.NotNil(t, start)
				assert.Equal(t, *tc.start, *start)
			}
		})
	}
}

func TestWindowSundayBelongsToPreviousMonday(t *testing.T) {
	// Sunday, July 14th 2024.
	now := time.Date(2024, 7, 14, 9, 0, 0, 0, time.UTC)
	start, _, err := window(PeriodWeek, now)
	require.NoError(t, err)
	require.NotNil(t, start)
	assert.Equal(t, "2024-07-08", *start)
}

func TestWindowUnknownPeriod(t *testing.T) {
	_, _, err := window("fortnight", time.Now())
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

// seedProgress inserts a progress row with a fixed date_learned, bypassing
// the engine's stamping.
func seedProgress(t *testing.T, ctx context.Context, userID, wordID, languageID int64, status, date string) {
	t.Helper()
	row := &models.WordsProgress{
		UserID:           userID,
		WordID:           wordID,
		TargetLanguageID: languageID,
		Status:           status,
		Interval:         1,
		DateLearned:      &date,
	}
	require.NoError(t, database.NewWordsProgressRepository().Create(ctx, row))
}

func TestWordsLearnedWindows(t *testing.T) {
	ctx := setupTest(t)
	stats := NewStatsService(logger.NewNop())

	language := seedLanguage(t, ctx, "en")
	user := seedUser(t, ctx, "a@example.com")
	today := time.Now().Format(models.DateLayout)

	words := []*models.Word{
		seedWord(t, ctx, "house", language.ID, models.DifficultyBeginner),
		seedWord(t, ctx, "tree", language.ID, models.DifficultyBeginner),
		seedWord(t, ctx, "water", language.ID, models.DifficultyBeginner),
	}
	seedProgress(t, ctx, user.ID, words[0].ID, language.ID, models.StatusLearned, today)
	seedProgress(t, ctx, user.ID, words[1].ID, language.ID, models.StatusMastered, today)
	seedProgress(t, ctx, user.ID, words[2].ID, language.ID, models.StatusLearned, "2020-06-15")

	todayStats, err := stats.WordsLearned(ctx, user.ID, PeriodToday, "")
	require.NoError(t, err)
	assert.Equal(t, 1, todayStats.WordsLearned)
	assert.Equal(t, 1, todayStats.WordsMastered)
	assert.Equal(t, 2, todayStats.TotalWords)
	require.Len(t, todayStats.DailyBreakdown, 1)
	assert.Equal(t, today, todayStats.DailyBreakdown[0].Date)

	allStats, err := stats.WordsLearned(ctx, user.ID, PeriodAll, "")
	require.NoError(t, err)
	assert.Equal(t, 2, allStats.WordsLearned)
	assert.Equal(t, 3, allStats.TotalWords)
	assert.Len(t, allStats.DailyBreakdown, 2)
	require.Len(t, allStats.LanguageBreakdown, 1)
	assert.Equal(t, "en", allStats.LanguageBreakdown[0].LanguageCode)
	assert.Equal(t, 3, allStats.LanguageBreakdown[0].TotalCount)
}

func TestWordsLearnedTotalIgnoresUnfinishedRows(t *testing.T) {
	ctx := setupTest(t)
	stats := NewStatsService(logger.NewNop())

	language := seedLanguage(t, ctx, "en")
	user := seedUser(t, ctx, "a@example.com")
	today := time.Now().Format(models.DateLayout)

	words := []*models.Word{
		seedWord(t, ctx, "house", language.ID, models.DifficultyBeginner),
		seedWord(t, ctx, "tree", language.ID, models.DifficultyBeginner),
		seedWord(t, ctx, "water", language.ID, models.DifficultyBeginner),
	}
	seedProgress(t, ctx, user.ID, words[0].ID, language.ID, models.StatusLearned, today)
	seedProgress(t, ctx, user.ID, words[1].ID, language.ID, models.StatusMastered, today)
	seedProgress(t, ctx, user.ID, words[2].ID, language.ID, models.StatusLearning, today)

	result, err := stats.WordsLearned(ctx, user.ID, PeriodToday, "")
	require.NoError(t, err)
	assert.Equal(t, 1, result.WordsLearned)
	assert.Equal(t, 1, result.WordsMastered)
	assert.Equal(t, 1, result.WordsLearning)
	// A row merely reviewed today does not count as a learned word.
	assert.Equal(t, 2, result.TotalWords)
}

func TestWordsLearnedLanguageFilter(t *testing.T) {
	ctx := setupTest(t)
	stats := NewStatsService(logger.NewNop())

	english := seedLanguage(t, ctx, "en")
	spanish := seedLanguage(t, ctx, "es")
	user := seedUser(t, ctx, "a@example.com")
	today := time.Now().Format(models.DateLayout)

	enWord := seedWord(t, ctx, "house", english.ID, models.DifficultyBeginner)
	esWord := seedWord(t, ctx, "casa", spanish.ID, models.DifficultyBeginner)
	seedProgress(t, ctx, user.ID, enWord.ID, english.ID, models.StatusLearned, today)
	seedProgress(t, ctx, user.ID, esWord.ID, spanish.ID, models.StatusLearned, today)

	result, err := stats.WordsLearned(ctx, user.ID, PeriodAll, "es")
	require.NoError(t, err)
	assert.Equal(t, 1, result.TotalWords)
	require.Len(t, result.LanguageBreakdown, 1)
	assert.Equal(t, "es", result.LanguageBreakdown[0].LanguageCode)
}

func TestWordsLearnedInvalidPeriod(t *testing.T) {
	ctx := setupTest(t)
	stats := NewStatsService(logger.NewNop())
	user := seedUser(t, ctx, "a@example.com")

	_, err := stats.WordsLearned(ctx, user.ID, "decade", "")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestWordsLearnedToday(t *testing.T) {
	ctx := setupTest(t)
	stats := NewStatsService(logger.NewNop())

	language := seedLanguage(t, ctx, "en")
	user := seedUser(t, ctx, "a@example.com")
	today := time.Now().Format(models.DateLayout)

	words := []*models.Word{
		seedWord(t, ctx, "house", language.ID, models.DifficultyBeginner),
		seedWord(t, ctx, "tree", language.ID, models.DifficultyBeginner),
		seedWord(t, ctx, "water", language.ID, models.DifficultyBeginner),
		seedWord(t, ctx, "fire", language.ID, models.DifficultyBeginner),
	}
	seedProgress(t, ctx, user.ID, words[0].ID, language.ID, models.StatusLearned, today)
	seedProgress(t, ctx, user.ID, words[1].ID, language.ID, models.StatusMastered, today)
	seedProgress(t, ctx, user.ID, words[2].ID, language.ID, models.StatusLearning, today)
	seedProgress(t, ctx, user.ID, words[3].ID, language.ID, models.StatusLearned, "2020-06-15")

	result, err := stats.WordsLearnedToday(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, today, result.Date)
	assert.Equal(t, 1, result.WordsLearnedToday)
	assert.Equal(t, 1, result.WordsMasteredToday)
	assert.Equal(t, 2, result.TotalLearnedToday)
	require.Len(t, result.BreakdownByLanguage, 1)
	assert.Equal(t, 2, result.BreakdownByLanguage[0].TotalCount)
}

func TestWordsLearnedTodayOmitsLanguagesStillLearning(t *testing.T) {
	ctx := setupTest(t)
	stats := NewStatsService(logger.NewNop())

	english := seedLanguage(t, ctx, "en")
	spanish := seedLanguage(t, ctx, "es")
	user := seedUser(t, ctx, "a@example.com")
	today := time.Now().Format(models.DateLayout)

	enWord := seedWord(t, ctx, "house", english.ID, models.DifficultyBeginner)
	esWord := seedWord(t, ctx, "casa", spanish.ID, models.DifficultyBeginner)
	seedProgress(t, ctx, user.ID, enWord.ID, english.ID, models.StatusLearned, today)
	seedProgress(t, ctx, user.ID, esWord.ID, spanish.ID, models.StatusLearning, today)

	result, err := stats.WordsLearnedToday(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, result.BreakdownByLanguage, 1)
	assert.Equal(t, "en", result.BreakdownByLanguage[0].LanguageCode)
	assert.Equal(t, 1, result.BreakdownByLanguage[0].LearnedCount)
	assert.Equal(t, 1, result.BreakdownByLanguage[0].TotalCount)
}

func TestQuizStats(t *testing.T) {
	ctx := setupTest(t)
	stats := NewStatsService(logger.NewNop())

	english := seedLanguage(t, ctx, "en")
	spanish := seedLanguage(t, ctx, "es")
	user := seedUser(t, ctx, "a@example.com")
	quizRepo := database.NewQuizProgressRepository()

	attempts := []models.QuizProgress{
		{UserID: user.ID, LanguageID: english.ID, TotalQuestions: 10, CorrectAnswers: 7},
		{UserID: user.ID, LanguageID: english.ID, TotalQuestions: 20, CorrectAnswers: 18},
		{UserID: user.ID, LanguageID: spanish.ID, TotalQuestions: 3, CorrectAnswers: 2},
	}
	for i := range attempts {
		require.NoError(t, quizRepo.Create(ctx, &attempts[i]))
	}

	result, err := stats.QuizStats(ctx, user.ID, "")
	require.NoError(t, err)
	require.Len(t, result, 2)

	// Ordered by total questions, busiest language first.
	assert.Equal(t, "en", result[0].Language.Code)
	assert.Equal(t, 30, result[0].TotalQuestions)
	assert.Equal(t, 2, result[0].QuizCount)
	assert.Equal(t, 83.33, result[0].AverageAccuracy) // 25/30

	assert.Equal(t, "es", result[1].Language.Code)
	assert.Equal(t, 3, result[1].TotalQuestions)
	assert.Equal(t, 66.67, result[1].AverageAccuracy)

	filtered, err := stats.QuizStats(ctx, user.ID, "es")
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "es", filtered[0].Language.Code)
}

func TestQuizStatsEmpty(t *testing.T) {
	ctx := setupTest(t)
	stats := NewStatsService(logger.NewNop())
	user := seedUser(t, ctx, "a@example.com")

	result, err := stats.QuizStats(ctx, user.ID, "")
	require.NoError(t, err)
	assert.Empty(t, result)
}
