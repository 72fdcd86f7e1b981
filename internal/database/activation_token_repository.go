package database

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kevinblo/fwords-backend/pkg/models"
)

// ActivationTokenRepository handles database operations for email
// activation tokens
type ActivationTokenRepository struct{}

// NewActivationTokenRepository creates a new repository instance
func NewActivationTokenRepository() *ActivationTokenRepository {
	return &ActivationTokenRepository{}
}

// Create issues a fresh token for the user
func (r *ActivationTokenRepository) Create(ctx context.Context, userID int64) (*models.ActivationToken, error) {
	token := &models.ActivationToken{
		UserID:    userID,
		Token:     uuid.New().String(),
		CreatedAt: time.Now(),
	}
	query := `INSERT INTO activation_tokens (user_id, token) VALUES ($1, $2)`
	id, err := insertReturningID(ctx, query, token.UserID, token.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create activation token: %v", err)
	}
	token.ID = id
	return token, nil
}

// GetUnused returns an unused token by its value
func (r *ActivationTokenRepository) GetUnused(ctx context.Context, token string) (*models.ActivationToken, error) {
	var result models.ActivationToken
	err := DB.GetContext(ctx, &result,
		"SELECT * FROM activation_tokens WHERE token = $1 AND is_used = false", token)
	if err != nil {
		return nil, fmt.Errorf("failed to get activation token: %w", err)
	}
	return &result, nil
}

// MarkUsed marks a token as consumed
func (r *ActivationTokenRepository) MarkUsed(ctx context.Context, id int64) error {
	_, err := DB.ExecContext(ctx, "UPDATE activation_tokens SET is_used = true WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to mark activation token used: %v", err)
	}
	return nil
}

// PurgeExpired removes used tokens and tokens older than ttl. Returns the
// number of deleted rows.
func (r *ActivationTokenRepository) PurgeExpired(ctx context.Context, ttl time.Duration) (int64, error) {
	cutoff := time.Now().Add(-ttl)
	result, err := DB.ExecContext(ctx,
		"DELETE FROM activation_tokens WHERE is_used = true OR created_at < $1", cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to purge activation tokens: %v", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %v", err)
	}
	return rows, nil
}
