package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/99minutos/taskhub/internal/core/domain"
	"github.com/99minutos/taskhub/internal/core/ports"
)

// SessionService resolves the actor behind a bearer token on every request.
// Nothing is kept between requests except the optional user cache.
type SessionService struct {
	tokens ports.TokenIssuer
	users  ports.UserRepository
	cache  ports.UserCache
	logger zerolog.Logger
}

// NewSessionService returns a SessionService. cache may be nil.
func NewSessionService(tokens ports.TokenIssuer, users ports.UserRepository, cache ports.UserCache, logger zerolog.Logger) *SessionService {
	if cache == nil {
		cache = NopUserCache{}
	}
	return &SessionService{tokens: tokens, users: users, cache: cache, logger: logger}
}

// Resolve verifies token and loads its subject.
func (s *SessionService) Resolve(ctx context.Context, token string) (*domain.User, error) {
	subject, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	if user, ok := s.cache.Get(ctx, subject); ok {
		return user, nil
	}

	user, err := s.users.FindByID(ctx, subject)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.logger.Debug().Str("subject", subject).Msg("token subject no longer exists")
			return nil, domain.ErrUnknownSubject
		}
		return nil, err
	}

	s.cache.Set(ctx, user)
	return user, nil
}

// NopUserCache never stores anything.
type NopUserCache struct{}

func (NopUserCache) Get(context.Context, string) (*domain.User, bool) { return nil, false }
func (NopUserCache) Set(context.Context, *domain.User)                {}
func (NopUserCache) Invalidate(context.Context, string)               {}
