package auth

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/roylobo/genai-portal/internal/models"
	"github.com/roylobo/genai-portal/pkg/utils"
)

// Sentinel errors exposed to the transport layer so handlers can pick the
// right status code.
var (
	ErrUserExists         = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidUsername    = errors.New("invalid username")
)

// UserStore is the persistence surface the auth service needs.
type UserStore interface {
	Create(user *models.User) error
	GetByUsername(username string) (*models.User, error)
}

// Service handles user registration and login.
type Service struct {
	users  UserStore
	logger *zap.Logger
}

// NewService creates a new auth service.
func NewService(users UserStore, logger *zap.Logger) *Service {
	return &Service{users: users, logger: logger}
}

// Register creates a new user account. Usernames are case-insensitive and
// stored lowercased.
func (s *Service) Register(username, password, department string) (*models.User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if err := utils.ValidateUsername(username); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidUsername, err)
	}
	if len(password) < 4 {
		return nil, fmt.Errorf("%w: password too short", ErrInvalidUsername)
	}

	existing, err := s.users.GetByUsername(username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if existing != nil {
		return nil, ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: string(hash),
		Department:   strings.TrimSpace(department),
	}
	if err := s.users.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("User registered", zap.String("username", username), zap.Int64("id", user.ID))
	return user, nil
}

// Login verifies the credentials and returns the user on success.
func (s *Service) Login(username, password string) (*models.User, error) {
	username = strings.ToLower(strings.TrimSpace(username))

	user, err := s.users.GetByUsername(username)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.Warn("Login failed", zap.String("username", username))
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
