package server

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kevinblo/fwords-backend/internal/database"
	"github.com/kevinblo/fwords-backend/internal/progress"
	"github.com/kevinblo/fwords-backend/pkg/logger"
	"github.com/kevinblo/fwords-backend/pkg/models"
)

// QuizHandler records quiz attempts and serves per-language quiz statistics.
type QuizHandler struct {
	quizRepo     *database.QuizProgressRepository
	languageRepo *database.LanguageRepository
	stats        *progress.StatsService
	log          *logger.Logger
}

func NewQuizHandler(stats *progress.StatsService, log *logger.Logger) *QuizHandler {
	return &QuizHandler{
		quizRepo:     database.NewQuizProgressRepository(),
		languageRepo: database.NewLanguageRepository(),
		stats:        stats,
		log:          log.With("handler", "quiz"),
	}
}

// CreateQuiz records one finished quiz attempt
func (qh *QuizHandler) CreateQuiz(c *gin.Context) {
	var req struct {
		LanguageID     int64 `json:"language_id" binding:"required"`
		CorrectAnswers int   `json:"correct_answers"`
		TotalQuestions int   `json:"total_questions" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", errors.New("invalid request body"))
		return
	}
	if req.CorrectAnswers < 0 || req.CorrectAnswers > req.TotalQuestions {
		RespondError(c, http.StatusBadRequest, "invalid_argument",
			errors.New("correct_answers must be between 0 and total_questions"))
		return
	}

	ctx := c.Request.Context()
	if _, err := qh.languageRepo.GetEnabledByID(ctx, req.LanguageID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			RespondError(c, http.StatusBadRequest, "invalid_reference", errors.New("unknown language"))
			return
		}
		respondDomainError(c, err)
		return
	}

	quiz := &models.QuizProgress{
		UserID:         currentUserID(c),
		LanguageID:     req.LanguageID,
		CorrectAnswers: req.CorrectAnswers,
		TotalQuestions: req.TotalQuestions,
	}
	if err := qh.quizRepo.Create(ctx, quiz); err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, quiz)
}

// ListQuizzes returns the user's quiz attempts, optionally for one language
func (qh *QuizHandler) ListQuizzes(c *gin.Context) {
	quizzes, err := qh.quizRepo.List(c.Request.Context(), currentUserID(c), c.Query("language"))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, quizzes)
}

// GetQuiz returns one quiz attempt
func (qh *QuizHandler) GetQuiz(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	quiz, err := qh.quizRepo.GetByID(c.Request.Context(), currentUserID(c), id)
	if err != nil {
		RespondError(c, http.StatusNotFound, "not_found", errors.New("quiz not found"))
		return
	}
	c.JSON(http.StatusOK, quiz)
}

// QuizStats returns the user's quiz attempts aggregated per language
func (qh *QuizHandler) QuizStats(c *gin.Context) {
	stats, err := qh.stats.QuizStats(c.Request.Context(), currentUserID(c), c.Query("language"))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
