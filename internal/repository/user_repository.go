package repository

import (
	"context"
	"database/sql"

	"github.com/qaportal-net/qaportal-be/internal/model"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) IUserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) (int, error) {
	query := `
		INSERT INTO users (username, email, password_hash, user_type, accepted_terms, accepted_terms_at, subscribed_newsletter)
		VALUES ($1, $2, $3, $4, $5, NOW(), $6)
		RETURNING id`

	var userID int
	err := r.db.QueryRowContext(ctx, query,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.UserType,
		user.AcceptedTerms,
		user.SubscribedNewsletter,
	).Scan(&userID)
	if err != nil {
		return 0, err
	}
	return userID, nil
}

// GetByUsernameOrEmail matches the login form, which accepts either.
func (r *userRepository) GetByUsernameOrEmail(ctx context.Context, login string) (*model.User, error) {
	query := `
		SELECT id, username, email, password_hash, user_type, is_active, last_login_at, created_at, updated_at
		FROM users
		WHERE username = $1 OR email = $1`

	var user model.User
	err := r.db.QueryRowContext(ctx, query, login).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.UserType,
		&user.IsActive,
		&user.LastLoginAt,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return &user, nil
}

func (r *userRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	query := `SELECT id FROM users WHERE username = $1 OR email = $2`

	var id int
	err := r.db.QueryRowContext(ctx, query, username, email).Scan(&id)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *userRepository) UpdateLastLogin(ctx context.Context, id int) error {
	query := `UPDATE users SET last_login_at = NOW(), updated_at = NOW() WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *userRepository) CountActive(ctx context.Context) (int, error) {
	query := `SELECT COUNT(*) FROM users WHERE is_active = TRUE`

	var count int
	if err := r.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
