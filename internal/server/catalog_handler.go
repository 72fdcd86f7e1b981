package server

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kevinblo/fwords-backend/internal/database"
	"github.com/kevinblo/fwords-backend/pkg/logger"
	"github.com/kevinblo/fwords-backend/pkg/models"
)

// CatalogHandler serves the read-only word catalog: languages, parts of
// speech and words with their translations.
type CatalogHandler struct {
	languageRepo *database.LanguageRepository
	posRepo      *database.PartOfSpeechRepository
	wordRepo     *database.WordRepository
	log          *logger.Logger
}

func NewCatalogHandler(log *logger.Logger) *CatalogHandler {
	return &CatalogHandler{
		languageRepo: database.NewLanguageRepository(),
		posRepo:      database.NewPartOfSpeechRepository(),
		wordRepo:     database.NewWordRepository(),
		log:          log.With("handler", "catalog"),
	}
}

// ListLanguages returns enabled languages; ?all=true includes disabled ones
func (ch *CatalogHandler) ListLanguages(c *gin.Context) {
	enabledOnly := c.Query("all") != "true"
	languages, err := ch.languageRepo.GetAll(c.Request.Context(), enabledOnly)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, languages)
}

// GetLanguage returns one enabled language by its ISO code
func (ch *CatalogHandler) GetLanguage(c *gin.Context) {
	language, err := ch.languageRepo.GetByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			RespondError(c, http.StatusNotFound, "not_found", errors.New("language not found"))
			return
		}
		respondDomainError(c, err)
		return
	}
	if !language.Enabled {
		RespondError(c, http.StatusNotFound, "not_found", errors.New("language not found"))
		return
	}
	c.JSON(http.StatusOK, language)
}

// ListPartsOfSpeech returns all parts of speech
func (ch *CatalogHandler) ListPartsOfSpeech(c *gin.Context) {
	parts, err := ch.posRepo.GetAll(c.Request.Context())
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, parts)
}

// ListWords returns active words filtered by language, difficulty, part of
// speech and a search term
func (ch *CatalogHandler) ListWords(c *gin.Context) {
	filter := database.WordFilter{
		LanguageCode:    c.Query("language"),
		DifficultyLevel: c.Query("difficulty_level"),
		PartOfSpeech:    c.Query("part_of_speech"),
		Search:          c.Query("search"),
	}
	if filter.DifficultyLevel != "" && !models.ValidDifficulty(filter.DifficultyLevel) {
		RespondError(c, http.StatusBadRequest, "invalid_argument", errors.New("unknown difficulty level"))
		return
	}

	words, err := ch.wordRepo.List(c.Request.Context(), filter)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, words)
}

// GetWord returns one word with its translations
func (ch *CatalogHandler) GetWord(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_argument", errors.New("invalid word id"))
		return
	}

	ctx := c.Request.Context()
	word, err := ch.wordRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			RespondError(c, http.StatusNotFound, "not_found", errors.New("word not found"))
			return
		}
		respondDomainError(c, err)
		return
	}

	translations, err := ch.wordRepo.GetTranslations(ctx, word.ID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"word":         word,
		"translations": translations,
	})
}
