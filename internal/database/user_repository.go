package database

import (
	"context"
	"fmt"

	"github.com/kevinblo/fwords-backend/pkg/models"
)

// UserRepository handles database operations for users
type UserRepository struct{}

// NewUserRepository creates a new repository instance
func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

// GetByID returns a user by id
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	err := DB.GetContext(ctx, &user, "SELECT * FROM users WHERE id = $1", id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// GetByEmail returns a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := DB.GetContext(ctx, &user, "SELECT * FROM users WHERE email = $1", email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// Create inserts a new user
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (email, password_hash, name, is_active, is_email_verified, notify)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	id, err := insertReturningID(ctx, query,
		user.Email, user.PasswordHash, user.Name, user.IsActive, user.IsEmailVerified, user.Notify)
	if err != nil {
		return fmt.Errorf("failed to create user: %v", err)
	}
	user.ID = id
	return nil
}

// Update persists the mutable profile fields of a user
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users SET
			name = $1,
			is_active = $2,
			is_email_verified = $3,
			interface_language_id = $4,
			native_language_id = $5,
			active_language_id = $6,
			notify = $7,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $8
	`
	result, err := DB.ExecContext(ctx, query,
		user.Name, user.IsActive, user.IsEmailVerified,
		user.InterfaceLanguageID, user.NativeLanguageID, user.ActiveLanguageID,
		user.Notify, user.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %v", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %v", err)
	}
	if rows == 0 {
		return fmt.Errorf("user %d not found", user.ID)
	}
	return nil
}
