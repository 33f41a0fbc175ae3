package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/apihub/apihub/internal/model"
)

// Common errors for user repository operations.
var (
	ErrUserNotFound   = errors.New("user not found")
	ErrUsernameExists = errors.New("username already exists")
)

// CreateUser inserts a new user and fills in the store-assigned ID and
// creation time. The username uniqueness constraint is the only duplicate
// check; a violation surfaces as ErrUsernameExists.
func (r *Repository) CreateUser(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (username, password, token)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(ctx, query,
		user.Username,
		user.Password,
		user.Token,
	).Scan(&user.ID, &user.CreatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrUsernameExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetUserByID retrieves a user by their ID.
func (r *Repository) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	query := `
		SELECT id, username, token, created_at
		FROM users
		WHERE id = $1
	`

	var user model.User
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Username,
		&user.Token,
		&user.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}

	return &user, nil
}

// GetUserByToken retrieves the user whose token equals the given credential.
// This is the hot path for authenticated requests.
func (r *Repository) GetUserByToken(ctx context.Context, token string) (*model.User, error) {
	query := `
		SELECT id, username, token, created_at
		FROM users
		WHERE token = $1
	`

	var user model.User
	err := r.pool.QueryRow(ctx, query, token).Scan(
		&user.ID,
		&user.Username,
		&user.Token,
		&user.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by token: %w", err)
	}

	return &user, nil
}

// GetUserByCredentials retrieves a user by exact username and password match.
// The password column holds the literal client-supplied value.
func (r *Repository) GetUserByCredentials(ctx context.Context, username, password string) (*model.User, error) {
	query := `
		SELECT id, username, token, created_at
		FROM users
		WHERE username = $1 AND password = $2
	`

	var user model.User
	err := r.pool.QueryRow(ctx, query, username, password).Scan(
		&user.ID,
		&user.Username,
		&user.Token,
		&user.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by credentials: %w", err)
	}

	return &user, nil
}
