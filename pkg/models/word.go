package models

import "time"

// Difficulty tiers for words, mapped onto CEFR levels
const (
	DifficultyBeginner          = "beginner"           // A1
	DifficultyElementary        = "elementary"         // A2
	DifficultyIntermediate      = "intermediate"       // B1
	DifficultyUpperIntermediate = "upper_intermediate" // B2
	DifficultyAdvanced          = "advanced"           // C1
	DifficultyProficient        = "proficient"         // C2
)

// Word genders
const (
	GenderMasculine = "masculine"
	GenderFeminine  = "feminine"
	GenderNeuter    = "neuter"
	GenderCommon    = "common"
)

// Word represents a vocabulary entry, unique per (word, language)
type Word struct {
	ID              int64     `json:"id" db:"id"`
	Word            string    `json:"word" db:"word"`
	LanguageID      int64     `json:"language_id" db:"language_id"`
	Transcription   string    `json:"transcription" db:"transcription"`
	PartOfSpeechID  int64     `json:"part_of_speech_id" db:"part_of_speech_id"`
	Gender          *string   `json:"gender,omitempty" db:"gender"`
	DifficultyLevel string    `json:"difficulty_level" db:"difficulty_level"`
	AudioURL        string    `json:"audio_url" db:"audio_url"`
	Active          bool      `json:"active" db:"active"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

// WordTranslation links a word to its translation in another language.
// Pairs are stored in both directions.
type WordTranslation struct {
	ID           int64     `json:"id" db:"id"`
	SourceWordID int64     `json:"source_word_id" db:"source_word_id"`
	TargetWordID int64     `json:"target_word_id" db:"target_word_id"`
	Confidence   float64   `json:"confidence" db:"confidence"` // 0.0 - 1.0
	Notes        string    `json:"notes" db:"notes"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// ValidDifficulty reports whether s is a known difficulty tier.
func ValidDifficulty(s string) bool {
	switch s {
	case DifficultyBeginner, DifficultyElementary, DifficultyIntermediate,
		DifficultyUpperIntermediate, DifficultyAdvanced, DifficultyProficient:
		return true
	}
	return false
}
