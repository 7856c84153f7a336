package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/PageCraftHQ/pagecraft-go/internal/domain/apperrors"
	"github.com/PageCraftHQ/pagecraft-go/internal/domain/entities/content"
	"github.com/PageCraftHQ/pagecraft-go/internal/infrastructure/observability/logging"
	userrepo "github.com/PageCraftHQ/pagecraft-go/internal/infrastructure/persistence/user"
	"github.com/PageCraftHQ/pagecraft-go/internal/infrastructure/security"
	"github.com/PageCraftHQ/pagecraft-go/pkg/config"
)

// AuthService handles registration, login, and identity resolution.
type AuthService struct {
	userRepo *userrepo.UserRepository
	logger   *logging.ChanneledLogger
}

func NewAuthService(userRepo *userrepo.UserRepository, logger *logging.ChanneledLogger) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// Register creates a user and returns a signed token.
func (s *AuthService) Register(email, password, displayName string) (string, *content.UserNode, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return "", nil, fmt.Errorf("invalid email address: %w", apperrors.ErrInvalidFormat)
	}
	if len(password) < 8 {
		return "", nil, fmt.Errorf("password must be at least 8 characters: %w", apperrors.ErrInvalidArgument)
	}

	hash, err := security.HashPassword(password, config.BcryptCost)
	if err != nil {
		return "", nil, err
	}

	record := &userrepo.Record{
		ID:           security.GenerateULID(),
		Email:        email,
		PasswordHash: hash,
		DisplayName:  displayName,
		Created:      time.Now().UTC(),
	}

	if err := s.userRepo.Store(record); err != nil {
		s.logger.LogAuthOperation("register", record.ID, false)
		return "", nil, err
	}

	token, err := security.GenerateUserToken(record.ID, record.Email, config.JWTSecret,
		time.Duration(config.JWTExpiryHours)*time.Hour)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}

	s.logger.LogAuthOperation("register", record.ID, true)
	return token, userNodeFromRecord(record), nil
}

// Login verifies credentials and returns a signed token. Bad credentials are
// reported as ErrNotFound so callers cannot distinguish a wrong password from
// an unknown email.
func (s *AuthService) Login(email, password string) (string, *content.UserNode, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	record, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.logger.LogAuthOperation("login", email, false)
			return "", nil, fmt.Errorf("invalid credentials: %w", apperrors.ErrNotFound)
		}
		return "", nil, err
	}

	if !security.VerifyPassword(record.PasswordHash, password) {
		s.logger.LogAuthOperation("login", record.ID, false)
		return "", nil, fmt.Errorf("invalid credentials: %w", apperrors.ErrNotFound)
	}

	token, err := security.GenerateUserToken(record.ID, record.Email, config.JWTSecret,
		time.Duration(config.JWTExpiryHours)*time.Hour)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}

	s.logger.LogAuthOperation("login", record.ID, true)
	return token, userNodeFromRecord(record), nil
}

// Status resolves a user id to its public profile.
func (s *AuthService) Status(userID string) (*content.UserNode, error) {
	record, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	return userNodeFromRecord(record), nil
}

func userNodeFromRecord(record *userrepo.Record) *content.UserNode {
	return &content.UserNode{
		ID:       record.ID,
		Email:    record.Email,
		NodeType: "User",
		Created:  record.Created,
	}
}
