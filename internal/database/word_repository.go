package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/kevinblo/fwords-backend/pkg/models"
)

// WordRepository handles database operations for the word catalog
type WordRepository struct{}

// NewWordRepository creates a new repository instance
func NewWordRepository() *WordRepository {
	return &WordRepository{}
}

// WordFilter narrows down List results. Zero values mean "no filter".
type WordFilter struct {
	LanguageCode    string
	DifficultyLevel string
	PartOfSpeech    string
	Search          string
}

// GetByID returns a word by its id
func (r *WordRepository) GetByID(ctx context.Context, id int64) (*models.Word, error) {
	var word models.Word
	err := DB.GetContext(ctx, &word, "SELECT * FROM words WHERE id = $1", id)
	if err != nil {
		return nil, fmt.Errorf("failed to get word: %w", err)
	}
	return &word, nil
}

// GetActiveByID returns a word by id only if it is active
func (r *WordRepository) GetActiveByID(ctx context.Context, id int64) (*models.Word, error) {
	var word models.Word
	err := DB.GetContext(ctx, &word, "SELECT * FROM words WHERE id = $1 AND active = true", id)
	if err != nil {
		return nil, fmt.Errorf("failed to get word: %w", err)
	}
	return &word, nil
}

// List returns active words matching the filter, ordered alphabetically
func (r *WordRepository) List(ctx context.Context, filter WordFilter) ([]models.Word, error) {
	query := `SELECT w.* FROM words w JOIN languages l ON w.language_id = l.id WHERE w.active = true`
	var args []interface{}
	add := func(clause string, value interface{}) {
		args = append(args, value)
		query += fmt.Sprintf(" AND %s = $%d", clause, len(args))
	}

	if filter.LanguageCode != "" {
		add("l.code", filter.LanguageCode)
	}
	if filter.DifficultyLevel != "" {
		add("w.difficulty_level", filter.DifficultyLevel)
	}
	if filter.PartOfSpeech != "" {
		args = append(args, filter.PartOfSpeech)
		query += fmt.Sprintf(" AND w.part_of_speech_id IN (SELECT id FROM parts_of_speech WHERE code = $%d)", len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
		query += fmt.Sprintf(" AND LOWER(w.word) LIKE $%d", len(args))
	}
	query += " ORDER BY w.word"

	var words []models.Word
	if err := DB.SelectContext(ctx, &words, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list words: %v", err)
	}
	return words, nil
}

// CountAvailable counts active words of a language within the given
// difficulty tiers. Used as the denominator of language progress.
func (r *WordRepository) CountAvailable(ctx context.Context, languageID int64, tiers []string) (int, error) {
	if len(tiers) == 0 {
		return 0, nil
	}
	query, args, err := sqlx.In(
		"SELECT COUNT(*) FROM words WHERE language_id = ? AND difficulty_level IN (?) AND active = true",
		languageID, tiers,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to build query: %v", err)
	}
	query = DB.Rebind(query)

	var count int
	if err := DB.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("failed to count available words: %v", err)
	}
	return count, nil
}

// Create inserts a new word
func (r *WordRepository) Create(ctx context.Context, word *models.Word) error {
	query := `
		INSERT INTO words (word, language_id, transcription, part_of_speech_id, gender, difficulty_level, audio_url, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	id, err := insertReturningID(ctx, query,
		word.Word, word.LanguageID, word.Transcription, word.PartOfSpeechID,
		word.Gender, word.DifficultyLevel, word.AudioURL, word.Active,
	)
	if err != nil {
		return fmt.Errorf("failed to create word: %v", err)
	}
	word.ID = id
	return nil
}

// GetByTextAndLanguage returns a word by its text within one language
func (r *WordRepository) GetByTextAndLanguage(ctx context.Context, text string, languageID int64) (*models.Word, error) {
	var word models.Word
	err := DB.GetContext(ctx, &word, "SELECT * FROM words WHERE word = $1 AND language_id = $2", text, languageID)
	if err != nil {
		return nil, fmt.Errorf("failed to get word: %w", err)
	}
	return &word, nil
}

// GetTranslations returns all translation links where the word is the source
func (r *WordRepository) GetTranslations(ctx context.Context, wordID int64) ([]models.WordTranslation, error) {
	var translations []models.WordTranslation
	err := DB.SelectContext(ctx, &translations,
		"SELECT * FROM word_translations WHERE source_word_id = $1", wordID)
	if err != nil {
		return nil, fmt.Errorf("failed to get translations: %v", err)
	}
	return translations, nil
}

// TranslationExists reports whether a pair already links the two words
func (r *WordRepository) TranslationExists(ctx context.Context, sourceID, targetID int64) (bool, error) {
	var count int
	err := DB.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM word_translations WHERE source_word_id = $1 AND target_word_id = $2",
		sourceID, targetID)
	if err != nil {
		return false, fmt.Errorf("failed to check translation: %v", err)
	}
	return count > 0, nil
}

// CreateTranslation inserts a translation pair and, when missing, the
// reverse pair as well.
func (r *WordRepository) CreateTranslation(ctx context.Context, tr *models.WordTranslation) error {
	if tr.SourceWordID == tr.TargetWordID {
		return errors.New("source and target word must differ")
	}

	query := `
		INSERT INTO word_translations (source_word_id, target_word_id, confidence, notes)
		VALUES ($1, $2, $3, $4)
	`
	id, err := insertReturningID(ctx, query, tr.SourceWordID, tr.TargetWordID, tr.Confidence, tr.Notes)
	if err != nil {
		return fmt.Errorf("failed to create translation: %v", err)
	}
	tr.ID = id

	// Mirror the pair in the opposite direction unless it already exists.
	var reverseCount int
	err = DB.GetContext(ctx, &reverseCount,
		"SELECT COUNT(*) FROM word_translations WHERE source_word_id = $1 AND target_word_id = $2",
		tr.TargetWordID, tr.SourceWordID)
	if err != nil {
		return fmt.Errorf("failed to check reverse translation: %v", err)
	}
	if reverseCount == 0 {
		_, err = insertReturningID(ctx, query, tr.TargetWordID, tr.SourceWordID, tr.Confidence, tr.Notes)
		if err != nil {
			return fmt.Errorf("failed to create reverse translation: %v", err)
		}
	}
	return nil
}
