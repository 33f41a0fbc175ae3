// Package service provides business logic for the application.
package service

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/apihub/apihub/internal/auth"
	"github.com/apihub/apihub/internal/metrics"
	"github.com/apihub/apihub/internal/model"
	"github.com/apihub/apihub/internal/repository"
)

// Account service errors.
var (
	ErrUsernameTooShort   = errors.New("username must be at least 3 characters")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

const (
	minUsernameLength = 3
	minPasswordLength = 6
)

// UserStore is the persistence contract the auth service depends on.
type UserStore interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id int64) (*model.User, error)
	GetUserByToken(ctx context.Context, token string) (*model.User, error)
	GetUserByCredentials(ctx context.Context, username, password string) (*model.User, error)
}

// AuthService handles registration, login and identity lookups.
type AuthService struct {
	store   UserStore
	metrics metrics.Recorder
}

// NewAuthService creates a new AuthService.
func NewAuthService(store UserStore, recorder metrics.Recorder) *AuthService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &AuthService{
		store:   store,
		metrics: recorder,
	}
}

// Register validates the credentials, mints a fresh token and inserts the
// user. Duplicate usernames are detected only by the store's uniqueness
// constraint - there is no read-before-write, so two concurrent
// registrations race safely and exactly one wins.
func (s *AuthService) Register(ctx context.Context, username, password string) (*model.User, error) {
	if utf8.RuneCountInString(username) < minUsernameLength {
		return nil, ErrUsernameTooShort
	}
	if utf8.RuneCountInString(password) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}

	user := &model.User{
		Username: username,
		Password: password,
		Token:    auth.NewToken(),
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUsernameExists) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	s.metrics.IncUserRegistered()
	return user, nil
}

// Login returns the stored token for an exact username and password match.
// The store is never mutated: the token issued at registration is permanent.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.store.GetUserByCredentials(ctx, username, password)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to look up credentials: %w", err)
	}

	s.metrics.IncUserLoggedIn()
	return user.Token, nil
}

// CurrentUser loads the user record for an already resolved identity.
// A vanished row (user deleted between token resolution and this call)
// reads as invalid credentials rather than a store failure.
func (s *AuthService) CurrentUser(ctx context.Context, userID int64) (*model.User, error) {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return user, nil
}
