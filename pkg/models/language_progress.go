package models

import "time"

// CEFR levels for LanguageProgress
const (
	LevelA1 = "A1"
	LevelA2 = "A2"
	LevelB1 = "B1"
	LevelB2 = "B2"
	LevelC1 = "C1"
	LevelC2 = "C2"
)

// levelTiers maps a CEFR level to the cumulative set of word difficulty
// tiers available at that level. Each level includes all lower tiers.
var levelTiers = map[string][]string{
	LevelA1: {DifficultyBeginner},
	LevelA2: {DifficultyBeginner, DifficultyElementary},
	LevelB1: {DifficultyBeginner, DifficultyElementary, DifficultyIntermediate},
	LevelB2: {DifficultyBeginner, DifficultyElementary, DifficultyIntermediate, DifficultyUpperIntermediate},
	LevelC1: {DifficultyBeginner, DifficultyElementary, DifficultyIntermediate, DifficultyUpperIntermediate, DifficultyAdvanced},
	LevelC2: {DifficultyBeginner, DifficultyElementary, DifficultyIntermediate, DifficultyUpperIntermediate, DifficultyAdvanced, DifficultyProficient},
}

// TiersForLevel returns the difficulty tiers eligible at the given level.
// Unknown levels fall back to the A1 tier set.
func TiersForLevel(level string) []string {
	tiers, ok := levelTiers[level]
	if !ok {
		return levelTiers[LevelA1]
	}
	return tiers
}

// ValidLevel reports whether s is a known CEFR level.
func ValidLevel(s string) bool {
	_, ok := levelTiers[s]
	return ok
}

// LanguageProgress aggregates a user's progress in one language, unique per
// (user, language). The learned_words* fields are maintained by the
// recalculator only.
type LanguageProgress struct {
	ID                  int64     `json:"id" db:"id"`
	UserID              int64     `json:"user_id" db:"user_id"`
	LanguageID          int64     `json:"language_id" db:"language_id"`
	Level               string    `json:"level" db:"level"`
	LearnedWords        float64   `json:"learned_words" db:"learned_words"` // percentage 0.00-100.00
	LearnedWordsCount   int       `json:"learned_words_count" db:"learned_words_count"`
	LearnedPhrases      float64   `json:"learned_phrases" db:"learned_phrases"`
	LearnedPhrasesCount int       `json:"learned_phrases_count" db:"learned_phrases_count"`
	CreatedAt           time.Time `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time `json:"updated_at" db:"updated_at"`
}
