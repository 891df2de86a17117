package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/ihs-frontdesk-api/internal/models"
)

// UserRepository manages administrative accounts.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository constructs a UserRepository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByUsername fetches a user by username.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	const query = `SELECT id, username, password_hash, role, created_at, updated_at FROM users WHERE username = $1`
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, username); err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByID fetches a user by primary key.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	const query = `SELECT id, username, password_hash, role, created_at, updated_at FROM users WHERE id = $1`
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		return nil, err
	}
	return &user, nil
}

// Create inserts an administrative account.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now
	const query = `INSERT INTO users (id, username, password_hash, role, created_at, updated_at)
        VALUES (:id, :username, :password_hash, :role, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, user); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// UpdatePassword rotates the stored hash.
func (r *UserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	const query = `UPDATE users SET password_hash = $2, updated_at = $3 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, passwordHash, time.Now().UTC()); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}
