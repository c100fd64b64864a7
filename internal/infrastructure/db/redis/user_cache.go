package redis

import (
	"context"
	"errors"
	"time"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/99minutos/taskhub/internal/core/domain"
)

const defaultCacheTTL = 5 * time.Minute

// UserCache keeps resolved actors in Redis so authenticated requests skip
// the credential store. Key format: user:<id>
// Password hashes are never written to the cache.
type UserCache struct {
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// NewUserCache creates a UserCache. A non-positive ttl falls back to five minutes.
func NewUserCache(client *redis.Client, ttl time.Duration, logger zerolog.Logger) *UserCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &UserCache{client: client, ttl: ttl, logger: logger}
}

type cachedUser struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	ManagerID *string   `json:"manager_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Get returns the cached user. Any Redis or decode failure is a miss.
func (c *UserCache) Get(ctx context.Context, id string) (*domain.User, bool) {
	raw, err := c.client.Get(ctx, userKey(id)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn().Err(err).Str("user_id", id).Msg("user cache read failed")
		}
		return nil, false
	}

	user, err := decodeUser(raw)
	if err != nil {
		c.logger.Warn().Err(err).Str("user_id", id).Msg("user cache entry unreadable")
		return nil, false
	}
	return user, true
}

func (c *UserCache) Set(ctx context.Context, user *domain.User) {
	raw, err := encodeUser(user)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, userKey(user.ID), raw, c.ttl).Err(); err != nil {
		c.logger.Warn().Err(err).Str("user_id", user.ID).Msg("user cache write failed")
	}
}

func (c *UserCache) Invalidate(ctx context.Context, id string) {
	if err := c.client.Del(ctx, userKey(id)).Err(); err != nil {
		c.logger.Warn().Err(err).Str("user_id", id).Msg("user cache invalidate failed")
	}
}

func userKey(id string) string {
	return "user:" + id
}

func encodeUser(u *domain.User) ([]byte, error) {
	return sonic.Marshal(cachedUser{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		Role:      string(u.Role),
		ManagerID: u.ManagerID,
		CreatedAt: u.CreatedAt,
	})
}

func decodeUser(raw []byte) (*domain.User, error) {
	var cu cachedUser
	if err := sonic.Unmarshal(raw, &cu); err != nil {
		return nil, err
	}
	if cu.ID == "" {
		return nil, errors.New("cached user without id")
	}
	return &domain.User{
		ID:        cu.ID,
		Email:     cu.Email,
		Username:  cu.Username,
		Role:      domain.Role(cu.Role),
		ManagerID: cu.ManagerID,
		CreatedAt: cu.CreatedAt,
	}, nil
}
