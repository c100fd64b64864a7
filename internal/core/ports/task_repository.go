package ports

import (
	"context"

	"github.com/99minutos/taskhub/internal/core/domain"
)

// TaskRepository persists tasks. Authorization is the caller's job.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	// ListByOwner returns the owner's tasks ordered by creation time.
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Task, error)
	// FindByID returns domain.ErrTaskNotFound for an unknown id.
	FindByID(ctx context.Context, id string) (*domain.Task, error)
	// Update writes title, description and completed.
	Update(ctx context.Context, task *domain.Task) error
	// Delete returns domain.ErrTaskNotFound when nothing was removed.
	Delete(ctx context.Context, id string) error
}
