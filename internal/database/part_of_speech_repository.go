package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/kevinblo/fwords-backend/pkg/models"
)

// PartOfSpeechRepository handles database operations for parts of speech
type PartOfSpeechRepository struct{}

// NewPartOfSpeechRepository creates a new repository instance
func NewPartOfSpeechRepository() *PartOfSpeechRepository {
	return &PartOfSpeechRepository{}
}

// GetAll returns all parts of speech
func (r *PartOfSpeechRepository) GetAll(ctx context.Context) ([]models.PartOfSpeech, error) {
	var parts []models.PartOfSpeech
	err := DB.SelectContext(ctx, &parts, "SELECT * FROM parts_of_speech ORDER BY code")
	if err != nil {
		return nil, fmt.Errorf("failed to get parts of speech: %v", err)
	}
	return parts, nil
}

// GetByCode returns a part of speech by its code
func (r *PartOfSpeechRepository) GetByCode(ctx context.Context, code string) (*models.PartOfSpeech, error) {
	var part models.PartOfSpeech
	err := DB.GetContext(ctx, &part, "SELECT * FROM parts_of_speech WHERE code = $1", code)
	if err != nil {
		return nil, fmt.Errorf("failed to get part of speech: %w", err)
	}
	return &part, nil
}

// Create inserts a new part of speech
func (r *PartOfSpeechRepository) Create(ctx context.Context, part *models.PartOfSpeech) error {
	query := `INSERT INTO parts_of_speech (code, name) VALUES ($1, $2)`
	id, err := insertReturningID(ctx, query, part.Code, part.Name)
	if err != nil {
		return fmt.Errorf("failed to create part of speech: %v", err)
	}
	part.ID = id
	return nil
}

// GetOrCreateByCode finds a part of speech by code, creating it when absent
func (r *PartOfSpeechRepository) GetOrCreateByCode(ctx context.Context, code, name string) (*models.PartOfSpeech, error) {
	part, err := r.GetByCode(ctx, code)
	if err == nil {
		return part, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	created := &models.PartOfSpeech{Code: code, Name: name}
	if err := r.Create(ctx, created); err != nil {
		return nil, err
	}
	return created, nil
}
