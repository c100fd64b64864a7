package ports

import (
	"context"

	"github.com/99minutos/taskhub/internal/core/domain"
)

// UserRepository is the credential store.
type UserRepository interface {
	// Create inserts user. A unique violation is reported as
	// domain.ErrEmailExists or domain.ErrUsernameExists.
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// FindByIdentifier matches either the email or the username.
	FindByIdentifier(ctx context.Context, identifier string) (*domain.User, error)
	SetManager(ctx context.Context, userID, managerID string) error
}

// UserCache holds actor records between requests. Implementations must
// treat every failure as a miss.
type UserCache interface {
	Get(ctx context.Context, id string) (*domain.User, bool)
	Set(ctx context.Context, user *domain.User)
	Invalidate(ctx context.Context, id string)
}
