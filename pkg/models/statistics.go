package models

// StatusCounts holds per-status word counts for a set of progress rows.
type StatusCounts struct {
	New      int `json:"new" db:"new_count"`
	Learning int `json:"learning" db:"learning_count"`
	Learned  int `json:"learned" db:"learned_count"`
	Mastered int `json:"mastered" db:"mastered_count"`
	Total    int `json:"total" db:"total_count"`
}

// DailyStat is one day of learning activity, grouped by date_learned.
type DailyStat struct {
	Date     string `json:"date" db:"date_learned"`
	New      int    `json:"new" db:"new_count"`
	Learning int    `json:"learning" db:"learning_count"`
	Learned  int    `json:"learned" db:"learned_count"`
	Mastered int    `json:"mastered" db:"mastered_count"`
	Total    int    `json:"total" db:"total_count"`
}

// LanguageStat is learning activity grouped by target language.
type LanguageStat struct {
	LanguageCode  string `json:"language_code" db:"language_code"`
	LanguageName  string `json:"language_name" db:"language_name"`
	NewCount      int    `json:"new_count" db:"new_count"`
	LearningCount int    `json:"learning_count" db:"learning_count"`
	LearnedCount  int    `json:"learned_count" db:"learned_count"`
	MasteredCount int    `json:"mastered_count" db:"mastered_count"`
	TotalCount    int    `json:"total_count" db:"total_count"`
}

// WordsLearnedStats is the response of the windowed words-learned query.
type WordsLearnedStats struct {
	Period            string         `json:"period"`
	StartDate         *string        `json:"start_date"`
	EndDate           string         `json:"end_date"`
	WordsNew          int            `json:"words_new"`
	WordsLearning     int            `json:"words_learning"`
	WordsLearned      int            `json:"words_learned"`
	WordsMastered     int            `json:"words_mastered"`
	TotalWords        int            `json:"total_words"`
	DailyBreakdown    []DailyStat    `json:"daily_breakdown"`
	LanguageBreakdown []LanguageStat `json:"language_breakdown"`
}

// WordsLearnedToday is the response of the words-learned-today query.
type WordsLearnedToday struct {
	Date                string         `json:"date"`
	WordsLearnedToday   int            `json:"words_learned_today"`
	WordsMasteredToday  int            `json:"words_mastered_today"`
	TotalLearnedToday   int            `json:"total_learned_today"`
	BreakdownByLanguage []LanguageStat `json:"breakdown_by_language"`
}

// QuizLanguageStats aggregates quiz attempts for one language.
type QuizLanguageStats struct {
	Language        Language `json:"language"`
	TotalQuestions  int      `json:"total_questions"`
	AverageAccuracy float64  `json:"average_accuracy"`
	QuizCount       int      `json:"quiz_count"`
}
