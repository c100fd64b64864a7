package ports

import (
	"context"

	"github.com/99minutos/taskhub/internal/core/domain"
)

// PasswordHasher hashes and verifies passwords. Calls may block while the
// work is queued; they return early when ctx is done. Verify reports a
// mismatch as (false, nil) and keeps errors for work that never ran.
type PasswordHasher interface {
	Hash(ctx context.Context, plaintext string) (string, error)
	Verify(ctx context.Context, plaintext, hash string) (bool, error)
}

// TokenIssuer mints and verifies bearer tokens carrying a user id.
type TokenIssuer interface {
	Mint(subject string) (string, error)
	Verify(token string) (string, error)
}

// SignupInput carries the raw signup fields.
type SignupInput struct {
	Email    string
	Username string
	Password string
	Role     string
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	AccessToken string
	TokenType   string
	User        *domain.User
}

// AuthService covers signup and login.
type AuthService interface {
	Signup(ctx context.Context, in SignupInput) (*domain.User, error)
	Login(ctx context.Context, identifier, password string) (*LoginResult, error)
}

// SessionService turns a bearer token into the acting user.
type SessionService interface {
	Resolve(ctx context.Context, token string) (*domain.User, error)
}

// UserService holds administrative user operations.
type UserService interface {
	AssignManager(ctx context.Context, username, managerUsername string) error
	CreateAdmin(ctx context.Context, email, username, password string) (*domain.User, error)
}
