package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kevinblo/fwords-backend/internal/database"
	"github.com/kevinblo/fwords-backend/internal/progress"
	"github.com/kevinblo/fwords-backend/pkg/logger"
)

// ProgressHandler serves the word and language progress endpoints.
type ProgressHandler struct {
	engine   *progress.Engine
	stats    *progress.StatsService
	langRepo *database.LanguageProgressRepository
	log      *logger.Logger
}

func NewProgressHandler(engine *progress.Engine, stats *progress.StatsService, log *logger.Logger) *ProgressHandler {
	return &ProgressHandler{
		engine:   engine,
		stats:    stats,
		langRepo: database.NewLanguageProgressRepository(),
		log:      log.With("handler", "progress"),
	}
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_argument", errors.New("invalid id"))
		return 0, false
	}
	return id, true
}

// ListWordsProgress returns the user's progress rows, optionally filtered
func (ph *ProgressHandler) ListWordsProgress(c *gin.Context) {
	filter := database.ProgressFilter{
		Status:             c.Query("status"),
		TargetLanguageCode: c.Query("target_language"),
		WordLanguageCode:   c.Query("word_language"),
		DueForReview:       c.Query("due_for_review") == "true",
	}
	rows, err := ph.engine.List(c.Request.Context(), currentUserID(c), filter)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// GetWordsProgress returns one progress row
func (ph *ProgressHandler) GetWordsProgress(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	row, err := ph.engine.Get(c.Request.Context(), currentUserID(c), id)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

// SubmitReview records a review, creating the progress row on first contact
func (ph *ProgressHandler) SubmitReview(c *gin.Context) {
	var req progress.ReviewInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", errors.New("invalid request body"))
		return
	}
	if req.WordID == 0 || req.TargetLanguageID == 0 {
		RespondError(c, http.StatusBadRequest, "invalid_argument",
			errors.New("word_id and target_language_id are required"))
		return
	}

	row, err := ph.engine.SubmitReview(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

// UpdateWordsProgress applies a partial update to one progress row
func (ph *ProgressHandler) UpdateWordsProgress(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req progress.UpdateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", errors.New("invalid request body"))
		return
	}

	row, err := ph.engine.UpdateByID(c.Request.Context(), currentUserID(c), id, req)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

// DeleteWordsProgress removes one progress row
func (ph *ProgressHandler) DeleteWordsProgress(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := ph.engine.Delete(c.Request.Context(), currentUserID(c), id); err != nil {
		respondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// BulkUpdateWordsProgress updates many progress rows, collecting per-entry
// failures instead of rolling back
func (ph *ProgressHandler) BulkUpdateWordsProgress(c *gin.Context) {
	var req struct {
		Updates []progress.BulkEntry `json:"updates"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", errors.New("invalid request body"))
		return
	}
	if len(req.Updates) == 0 {
		RespondError(c, http.StatusBadRequest, "invalid_argument", errors.New("updates must not be empty"))
		return
	}

	result := ph.engine.BulkUpdate(c.Request.Context(), currentUserID(c), req.Updates)
	c.JSON(http.StatusOK, result)
}

// ListLanguageProgress returns the user's language aggregates
func (ph *ProgressHandler) ListLanguageProgress(c *gin.Context) {
	rows, err := ph.langRepo.List(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// CreateLanguageProgress enrolls the user in a language, creating the
// aggregate before any word has been reviewed
func (ph *ProgressHandler) CreateLanguageProgress(c *gin.Context) {
	var req struct {
		LanguageID int64   `json:"language_id" binding:"required"`
		Level      *string `json:"level"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", errors.New("invalid request body"))
		return
	}

	row, err := ph.engine.EnrollLanguage(c.Request.Context(), currentUserID(c), req.LanguageID, req.Level)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, row)
}

// GetLanguageProgress returns one language aggregate
func (ph *ProgressHandler) GetLanguageProgress(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	row, err := ph.langRepo.GetByID(c.Request.Context(), currentUserID(c), id)
	if err != nil {
		RespondError(c, http.StatusNotFound, "not_found", errors.New("language progress not found"))
		return
	}
	c.JSON(http.StatusOK, row)
}

// UpdateLanguageLevel changes the level of a language aggregate and
// recalculates its learned-words figures
func (ph *ProgressHandler) UpdateLanguageLevel(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req struct {
		Level string `json:"level" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", errors.New("invalid request body"))
		return
	}

	row, err := ph.engine.Recalculator().SetLevel(c.Request.Context(), currentUserID(c), id, req.Level)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

// DeleteLanguageProgress removes a language aggregate
func (ph *ProgressHandler) DeleteLanguageProgress(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := ph.langRepo.Delete(c.Request.Context(), currentUserID(c), id); err != nil {
		RespondError(c, http.StatusNotFound, "not_found", errors.New("language progress not found"))
		return
	}
	c.Status(http.StatusNoContent)
}

// WordsLearnedToday returns today's learned and mastered words
func (ph *ProgressHandler) WordsLearnedToday(c *gin.Context) {
	result, err := ph.stats.WordsLearnedToday(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// WordsStats returns windowed learning statistics.
// ?period=today|week|month|year|all (default today), optional ?language=<code>.
func (ph *ProgressHandler) WordsStats(c *gin.Context) {
	period := c.DefaultQuery("period", progress.PeriodToday)
	result, err := ph.stats.WordsLearned(c.Request.Context(), currentUserID(c), period, c.Query("language"))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
