package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/kevinblo/fwords-backend/pkg/models"
)

// LanguageRepository handles database operations for languages
type LanguageRepository struct{}

// NewLanguageRepository creates a new repository instance
func NewLanguageRepository() *LanguageRepository {
	return &LanguageRepository{}
}

// GetAll returns all languages, optionally only enabled ones
func (r *LanguageRepository) GetAll(ctx context.Context, enabledOnly bool) ([]models.Language, error) {
	query := "SELECT * FROM languages ORDER BY name_english"
	if enabledOnly {
		query = "SELECT * FROM languages WHERE enabled = true ORDER BY name_english"
	}
	var languages []models.Language
	if err := DB.SelectContext(ctx, &languages, query); err != nil {
		return nil, fmt.Errorf("failed to get languages: %v", err)
	}
	return languages, nil
}

// GetByID returns a language by its id
func (r *LanguageRepository) GetByID(ctx context.Context, id int64) (*models.Language, error) {
	var language models.Language
	err := DB.GetContext(ctx, &language, "SELECT * FROM languages WHERE id = $1", id)
	if err != nil {
		return nil, fmt.Errorf("failed to get language: %w", err)
	}
	return &language, nil
}

// GetByCode returns a language by its code
func (r *LanguageRepository) GetByCode(ctx context.Context, code string) (*models.Language, error) {
	var language models.Language
	err := DB.GetContext(ctx, &language, "SELECT * FROM languages WHERE code = $1", code)
	if err != nil {
		return nil, fmt.Errorf("failed to get language: %w", err)
	}
	return &language, nil
}

// GetEnabledByID returns a language by id only if it is enabled
func (r *LanguageRepository) GetEnabledByID(ctx context.Context, id int64) (*models.Language, error) {
	var language models.Language
	err := DB.GetContext(ctx, &language, "SELECT * FROM languages WHERE id = $1 AND enabled = true", id)
	if err != nil {
		return nil, fmt.Errorf("failed to get language: %w", err)
	}
	return &language, nil
}

// Create inserts a new language
func (r *LanguageRepository) Create(ctx context.Context, language *models.Language) error {
	query := `
		INSERT INTO languages (code, name_english, name_native, enabled)
		VALUES ($1, $2, $3, $4)
	`
	id, err := insertReturningID(ctx, query, language.Code, language.NameEnglish, language.NameNative, language.Enabled)
	if err != nil {
		return fmt.Errorf("failed to create language: %v", err)
	}
	language.ID = id
	return nil
}

// GetOrCreateByCode finds a language by code, creating it when absent.
// Used by the catalog importer.
func (r *LanguageRepository) GetOrCreateByCode(ctx context.Context, code, nameEnglish string) (*models.Language, error) {
	language, err := r.GetByCode(ctx, code)
	if err == nil {
		return language, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	created := &models.Language{
		Code:        code,
		NameEnglish: nameEnglish,
		NameNative:  nameEnglish,
		Enabled:     true,
	}
	if err := r.Create(ctx, created); err != nil {
		return nil, err
	}
	return created, nil
}
