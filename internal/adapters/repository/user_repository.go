package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/spartan/planner/internal/domain/entities"
	"github.com/spartan/planner/internal/infrastructure/database"
	"github.com/spartan/planner/internal/infrastructure/logger"
	"github.com/spartan/planner/internal/ports"
)

// userRepository looks up the demo login account
type userRepository struct {
	db     *database.DB
	logger *logger.Logger
}

// NewUserRepository creates a user repository
func NewUserRepository(db *database.DB, log *logger.Logger) ports.UserRepository {
	return &userRepository{db: db, logger: log.WithComponent("user_repository")}
}

// GetByEmail fetches a user by email
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	query := `SELECT id, email, display_name, password_hash, created_at FROM users WHERE email = $1`

	var user entities.User
	if err := r.db.DB.GetContext(ctx, &user, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entities.ErrNotFound
		}
		return nil, entities.NewStoreError("get_user", err)
	}
	return &user, nil
}

// Create inserts a user, replacing the stored credentials when the email
// already exists. Used by the seed command.
func (r *userRepository) Create(ctx context.Context, user *entities.User) error {
	query := `
		INSERT INTO users (id, email, display_name, password_hash, created_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (email) DO UPDATE
		SET display_name = EXCLUDED.display_name, password_hash = EXCLUDED.password_hash`

	if _, err := r.db.DB.ExecContext(ctx, query, user.ID, user.Email, user.DisplayName, user.PasswordHash); err != nil {
		return entities.NewStoreError("create_user", err)
	}
	r.logger.WithFields("email", user.Email).Info("user upserted")
	return nil
}
