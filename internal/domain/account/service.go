package account

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/PnBafon/viten-backend/internal/core/apperror"
	"github.com/PnBafon/viten-backend/internal/core/tx"
	"github.com/PnBafon/viten-backend/pkg/logger"
)

// ServiceConfig holds account service configuration.
type ServiceConfig struct {
	PasswordMinLength int
}

// DefaultServiceConfig returns default configuration.
func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		PasswordMinLength: 8,
	}
}

// TokenPair is returned on successful login.
type TokenPair struct {
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
	TokenType   string    `json:"tokenType"`
}

// Service provides authentication logic.
type Service struct {
	repo       Repository
	txManager  tx.Manager
	jwtService *JWTService
	config     ServiceConfig
}

// NewService creates a new account service.
func NewService(repo Repository, txManager tx.Manager, jwtService *JWTService, config ServiceConfig) *Service {
	return &Service{
		repo:       repo,
		txManager:  txManager,
		jwtService: jwtService,
		config:     config,
	}
}

// Register registers a new user. The very first account becomes the admin.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	if len(req.Password) < s.config.PasswordMinLength {
		return nil, apperror.NewValidation(
			fmt.Sprintf("password must be at least %d characters", s.config.PasswordMinLength),
		).WithDetail("field", "password")
	}

	exists, err := s.repo.Exists(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check email exists: %w", err)
	}
	if exists {
		return nil, apperror.NewConflict("email already registered").WithDetail("email", req.Email)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := NewUser(req.Email, string(passwordHash))
	user.FullName = req.FullName
	if req.Role != "" {
		user.Role = req.Role
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		count, err := s.repo.Count(ctx)
		if err != nil {
			return fmt.Errorf("count users: %w", err)
		}
		if count == 0 {
			user.Role = RoleAdmin
		}
		if err := user.Validate(ctx); err != nil {
			return err
		}
		if err := s.repo.Create(ctx, user); err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "user registered",
		"user_id", user.ID,
		"email", user.Email,
		"role", user.Role)

	return user, nil
}

// Login authenticates a user and returns an access token.
func (s *Service) Login(ctx context.Context, creds Credentials) (*TokenPair, *User, error) {
	user, err := s.repo.GetByEmail(ctx, creds.Email)
	if err != nil {
		return nil, nil, apperror.NewUnauthorized("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)); err != nil {
		return nil, nil, apperror.NewUnauthorized("invalid credentials")
	}

	accessToken, expiresAt, err := s.jwtService.GenerateAccessToken(user)
	if err != nil {
		return nil, nil, fmt.Errorf("generate access token: %w", err)
	}

	logger.Info(ctx, "user logged in",
		"user_id", user.ID,
		"email", user.Email)

	return &TokenPair{
		AccessToken: accessToken,
		ExpiresAt:   expiresAt,
		TokenType:   "Bearer",
	}, user, nil
}

// GetUserByID retrieves a user.
func (s *Service) GetUserByID(ctx context.Context, id int64) (*User, error) {
	return s.repo.GetByID(ctx, id)
}
