package progress

import (
	"context"
	"fmt"
	"time"

	"github.com/kevinblo/fwords-backend/internal/database"
	"github.com/kevinblo/fwords-backend/pkg/logger"
	"github.com/kevinblo/fwords-backend/pkg/models"
)

// Statistics periods
const (
	PeriodToday = "today"
	PeriodWeek  = "week"
	PeriodMonth = "month"
	PeriodYear  = "year"
	PeriodAll   = "all"
)

// StatsService answers windowed learning statistics queries over the
// date_learned field.
type StatsService struct {
	progressRepo *database.WordsProgressRepository
	quizRepo     *database.QuizProgressRepository
	log          *logger.Logger
}

// NewStatsService creates a stats service backed by the global database
// connection
func NewStatsService(log *logger.Logger) *StatsService {
	return &StatsService{
		progressRepo: database.NewWordsProgressRepository(),
		quizRepo:     database.NewQuizProgressRepository(),
		log:          log,
	}
}

// window resolves a period name into an inclusive [start, end] date range
// ending today. The week starts on Monday, the month on the 1st, the year
// on January 1st. "all" has no lower bound.
func window(period string, now time.Time) (*string, string, error) {
	end := now.Format(models.DateLayout)
	var start time.Time
	switch period {
	case PeriodToday:
		start = now
	case PeriodWeek:
		offset := (int(now.Weekday()) + 6) % 7
		start = now.AddDate(0, 0, -offset)
	case PeriodMonth:
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	case PeriodYear:
		start = time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
	case PeriodAll:
		return nil, end, nil
	default:
		return nil, "", fmt.Errorf("%w: unknown period %q", ErrInvalidArgument, period)
	}
	s := start.Format(models.DateLayout)
	return &s, end, nil
}

// WordsLearned returns status counts for the period plus daily and
// per-language breakdowns. A non-empty languageCode restricts everything to
// that target language.
func (s *StatsService) WordsLearned(ctx context.Context, userID int64, period, languageCode string) (*models.WordsLearnedStats, error) {
	startDate, endDate, err := window(period, time.Now())
	if err != nil {
		return nil, err
	}

	counts, err := s.progressRepo.StatusCounts(ctx, userID, startDate, endDate, languageCode)
	if err != nil {
		return nil, err
	}
	daily, err := s.progressRepo.DailyBreakdown(ctx, userID, startDate, endDate, languageCode)
	if err != nil {
		return nil, err
	}
	byLanguage, err := s.progressRepo.LanguageBreakdown(ctx, userID, startDate, endDate, languageCode)
	if err != nil {
		return nil, err
	}

	return &models.WordsLearnedStats{
		Period:            period,
		StartDate:         startDate,
		EndDate:           endDate,
		WordsNew:          counts.New,
		WordsLearning:     counts.Learning,
		WordsLearned:      counts.Learned,
		WordsMastered:     counts.Mastered,
		TotalWords:        counts.Learned + counts.Mastered,
		DailyBreakdown:    daily,
		LanguageBreakdown: byLanguage,
	}, nil
}

// WordsLearnedToday returns the words that reached learned or mastered
// status today, with a per-language breakdown over those rows only.
func (s *StatsService) WordsLearnedToday(ctx context.Context, userID int64) (*models.WordsLearnedToday, error) {
	date := time.Now().Format(models.DateLayout)

	counts, err := s.progressRepo.StatusCounts(ctx, userID, &date, date, "")
	if err != nil {
		return nil, err
	}
	byLanguage, err := s.progressRepo.LearnedLanguageBreakdown(ctx, userID, &date, date)
	if err != nil {
		return nil, err
	}

	return &models.WordsLearnedToday{
		Date:                date,
		WordsLearnedToday:   counts.Learned,
		WordsMasteredToday:  counts.Mastered,
		TotalLearnedToday:   counts.Learned + counts.Mastered,
		BreakdownByLanguage: byLanguage,
	}, nil
}

// QuizStats returns the user's quiz attempts aggregated per language,
// optionally limited to one language.
func (s *StatsService) QuizStats(ctx context.Context, userID int64, languageCode string) ([]models.QuizLanguageStats, error) {
	return s.quizRepo.Stats(ctx, userID, languageCode)
}
