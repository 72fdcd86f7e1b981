package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/kevinblo/fwords-backend/internal/config"
)

// DB is the global database connection
var DB *sqlx.DB

// dbType is the active dialect: "postgres" or "sqlite"
var dbType = "sqlite"

// Connect establishes a connection to the configured database and
// initializes the schema.
func Connect(cfg config.DBConfig) error {
	switch cfg.Type {
	case "postgres":
		dsn := fmt.Sprintf("host=%s port=%s dbname=%s user=%s password=%s sslmode=%s",
			cfg.Host, cfg.Port, cfg.Name, cfg.User, cfg.Password, cfg.SSLMode)
		db, err := sqlx.Connect("postgres", dsn)
		if err != nil {
			return fmt.Errorf("failed to connect to postgres: %v", err)
		}
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		DB = db
		dbType = "postgres"
	default:
		if err := connectSQLite(cfg.Path); err != nil {
			return err
		}
	}

	return initializeSchema()
}

// ConnectSQLite opens a SQLite database at the given path and initializes
// the schema. Used directly by tests with ":memory:".
func ConnectSQLite(path string) error {
	if err := connectSQLite(path); err != nil {
		return err
	}
	return initializeSchema()
}

func connectSQLite(path string) error {
	if path == "" {
		path = filepath.Join("data", "fwords.db")
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" && path != ":memory:" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create data directory: %v", err)
		}
	}

	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %v", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %v", err)
	}

	// SQLite doesn't support multiple writers
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	DB = db
	dbType = "sqlite"
	return nil
}

// Close closes the database connection
func Close() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}

// Dialect returns the active database dialect
func Dialect() string {
	return dbType
}

// pk returns the dialect-specific primary key column definition
func pk() string {
	if dbType == "postgres" {
		return "id SERIAL PRIMARY KEY"
	}
	return "id INTEGER PRIMARY KEY AUTOINCREMENT"
}

// initializeSchema creates necessary tables if they don't exist
func initializeSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS languages (
			` + pk() + `,
			code VARCHAR(10) UNIQUE NOT NULL,
			name_english VARCHAR(100) NOT NULL,
			name_native VARCHAR(100) NOT NULL,
			enabled BOOLEAN DEFAULT true,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS parts_of_speech (
			` + pk() + `,
			code VARCHAR(30) UNIQUE NOT NULL,
			name VARCHAR(100) NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS words (
			` + pk() + `,
			word VARCHAR(200) NOT NULL,
			language_id INTEGER NOT NULL,
			transcription VARCHAR(300) DEFAULT '',
			part_of_speech_id INTEGER NOT NULL,
			gender VARCHAR(20),
			difficulty_level VARCHAR(30) DEFAULT 'beginner',
			audio_url VARCHAR(255) DEFAULT '',
			active BOOLEAN DEFAULT true,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (language_id) REFERENCES languages(id) ON DELETE CASCADE,
			FOREIGN KEY (part_of_speech_id) REFERENCES parts_of_speech(id) ON DELETE CASCADE,
			UNIQUE(word, language_id)
		)`,
		`CREATE TABLE IF NOT EXISTS word_translations (
			` + pk() + `,
			source_word_id INTEGER NOT NULL,
			target_word_id INTEGER NOT NULL,
			confidence REAL DEFAULT 1.0,
			notes TEXT DEFAULT '',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (source_word_id) REFERENCES words(id) ON DELETE CASCADE,
			FOREIGN KEY (target_word_id) REFERENCES words(id) ON DELETE CASCADE,
			UNIQUE(source_word_id, target_word_id)
		)`,
		`CREATE TABLE IF NOT EXISTS users (
			` + pk() + `,
			email VARCHAR(254) UNIQUE NOT NULL,
			password_hash VARCHAR(255) NOT NULL,
			name VARCHAR(150) DEFAULT '',
			is_active BOOLEAN DEFAULT false,
			is_email_verified BOOLEAN DEFAULT false,
			interface_language_id INTEGER,
			native_language_id INTEGER,
			active_language_id INTEGER,
			notify BOOLEAN DEFAULT true,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (interface_language_id) REFERENCES languages(id) ON DELETE SET NULL,
			FOREIGN KEY (native_language_id) REFERENCES languages(id) ON DELETE SET NULL,
			FOREIGN KEY (active_language_id) REFERENCES languages(id) ON DELETE SET NULL
		)`,
		`CREATE TABLE IF NOT EXISTS activation_tokens (
			` + pk() + `,
			user_id INTEGER NOT NULL,
			token VARCHAR(36) UNIQUE NOT NULL,
			is_used BOOLEAN DEFAULT false,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
		)`,
		`CREATE TABLE IF NOT EXISTS words_progress (
			` + pk() + `,
			user_id INTEGER NOT NULL,
			word_id INTEGER NOT NULL,
			target_language_id INTEGER NOT NULL,
			status VARCHAR(10) DEFAULT 'new',
			"interval" INTEGER DEFAULT 1,
			next_review TIMESTAMP,
			review_count INTEGER DEFAULT 0,
			correct_count INTEGER DEFAULT 0,
			date_learned VARCHAR(10),
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE,
			FOREIGN KEY (word_id) REFERENCES words(id) ON DELETE CASCADE,
			FOREIGN KEY (target_language_id) REFERENCES languages(id) ON DELETE CASCADE,
			UNIQUE(user_id, word_id, target_language_id)
		)`,
		`CREATE TABLE IF NOT EXISTS language_progress (
			` + pk() + `,
			user_id INTEGER NOT NULL,
			language_id INTEGER NOT NULL,
			level VARCHAR(2) DEFAULT 'A1',
			learned_words REAL DEFAULT 0,
			learned_words_count INTEGER DEFAULT 0,
			learned_phrases REAL DEFAULT 0,
			learned_phrases_count INTEGER DEFAULT 0,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE,
			FOREIGN KEY (language_id) REFERENCES languages(id) ON DELETE CASCADE,
			UNIQUE(user_id, language_id)
		)`,
		`CREATE TABLE IF NOT EXISTS quiz_progress (
			` + pk() + `,
			user_id INTEGER NOT NULL,
			language_id INTEGER NOT NULL,
			total_questions INTEGER NOT NULL,
			correct_answers INTEGER NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE,
			FOREIGN KEY (language_id) REFERENCES languages(id) ON DELETE CASCADE
		)`,
		`CREATE INDEX IF NOT EXISTS idx_words_language ON words(language_id)`,
		`CREATE INDEX IF NOT EXISTS idx_words_difficulty ON words(difficulty_level)`,
		`CREATE INDEX IF NOT EXISTS idx_words_progress_user ON words_progress(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_words_progress_date ON words_progress(date_learned)`,
		`CREATE INDEX IF NOT EXISTS idx_quiz_progress_user ON quiz_progress(user_id)`,
	}

	for _, stmt := range statements {
		if _, err := DB.Exec(stmt); err != nil {
			return fmt.Errorf("failed to initialize schema: %v", err)
		}
	}
	return nil
}
