package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/egliseduberger/website/internal/models"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for an unknown username or a wrong password alike
var ErrInvalidCredentials = errors.New("invalid credentials")

// dummyPasswordHash is compared against when the username is unknown so both failure paths cost one bcrypt comparison
const dummyPasswordHash = "$2b$10$d4ItJTK1Fl79uyxwo7nJjO3TX3jNHppp6SQuR89SlAPzttyDP9gua"

// UserRepository is the interface that wraps methods for Users table data access
type UserRepository interface {
	// Method GetByUsername retrieves a user by exact username.
	//
	// "username" parameter is compared as is, without trimming or case folding.
	//
	// If the user does not exist, models.ErrNotFound will be returned together with "nil" value.
	// If some other error occurs during data retrieve, the error will be returned together with "nil" value.
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	// Method Create inserts a new user or replaces the password hash and role of an existing one.
	//
	// "user" parameter is used to create the user; its ID is filled on success.
	//
	// If some error occurs during data insert, the error will be returned.
	Create(ctx context.Context, user *models.User) error
}

type authService struct {
	repo   UserRepository
	logger *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(repo UserRepository, logger *zap.Logger) *authService {
	return &authService{
		repo:   repo,
		logger: logger,
	}
}

// Login checks a username and password pair
//
// Unknown usernames and wrong passwords both yield ErrInvalidCredentials.
// A data store failure is returned wrapped so callers can log it, but should be shown to the user the same way.
func (s *authService) Login(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			bcrypt.CompareHashAndPassword([]byte(dummyPasswordHash), []byte(password))
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// CreateUser hashes the password and stores the user, replacing an existing account with the same username
func (s *authService) CreateUser(ctx context.Context, username, password, role string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("username cannot be empty")
	}
	if password == "" {
		return nil, fmt.Errorf("password cannot be empty")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}
