package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/99minutos/taskhub/internal/core/domain"
	"github.com/99minutos/taskhub/internal/core/ports"
	"github.com/99minutos/taskhub/internal/core/validation"
)

const tokenTypeBearer = "bearer"

// AuthService implements signup and login.
type AuthService struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
	tokens ports.TokenIssuer
	fields *validation.FieldValidator
	logger zerolog.Logger
}

func NewAuthService(users ports.UserRepository, hasher ports.PasswordHasher, tokens ports.TokenIssuer, logger zerolog.Logger) *AuthService {
	return &AuthService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		fields: validation.NewFieldValidator(),
		logger: logger,
	}
}

// Signup validates the fields, resolves the requested role and creates the
// account. Only "user" and "manager" may be requested.
func (s *AuthService) Signup(ctx context.Context, in ports.SignupInput) (*domain.User, error) {
	if reason := s.fields.Signup(in.Email, in.Username, in.Password); reason != "" {
		return nil, domain.NewValidationError(reason)
	}
	role, err := domain.SignupRole(in.Role)
	if err != nil {
		return nil, err
	}
	return s.register(ctx, in.Email, in.Username, in.Password, role)
}

// Register creates an account with an explicit role after running the
// signup field checks. It backs the create-admin command.
func (s *AuthService) Register(ctx context.Context, email, username, password string, role domain.Role) (*domain.User, error) {
	if reason := s.fields.Signup(email, username, password); reason != "" {
		return nil, domain.NewValidationError(reason)
	}
	if !role.Valid() {
		return nil, domain.ErrInvalidRole
	}
	return s.register(ctx, email, username, password, role)
}

func (s *AuthService) register(ctx context.Context, email, username, password string, role domain.Role) (*domain.User, error) {
	if err := s.ensureUnique(ctx, email, username); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(ctx, password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Str("role", string(role)).Msg("user registered")
	return user, nil
}

// ensureUnique checks email before username so a request colliding on both
// reports the email.
func (s *AuthService) ensureUnique(ctx context.Context, email, username string) error {
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return domain.ErrEmailExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}

	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		return domain.ErrUsernameExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}
	return nil
}

// Login authenticates by email or username and mints an access token.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (*ports.LoginResult, error) {
	user, err := s.users.FindByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	ok, err := s.hasher.Verify(ctx, password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		s.logger.Debug().Str("user_id", user.ID).Msg("login rejected: password mismatch")
		return nil, domain.ErrInvalidPassword
	}

	token, err := s.tokens.Mint(user.ID)
	if err != nil {
		return nil, fmt.Errorf("mint token: %w", err)
	}

	return &ports.LoginResult{AccessToken: token, TokenType: tokenTypeBearer, User: user}, nil
}
