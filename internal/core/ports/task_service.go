package ports

import (
	"context"

	"github.com/99minutos/taskhub/internal/core/domain"
)

// CreateTaskInput carries the fields a caller may set on a new task. The
// owner is always the actor.
type CreateTaskInput struct {
	Title       string
	Description *string
}

// UpdateTaskInput replaces all mutable fields of a task.
type UpdateTaskInput struct {
	Title       string
	Description *string
	Completed   bool
}

// TaskService applies access control around the task repository. The actor
// is passed explicitly on every call.
type TaskService interface {
	Create(ctx context.Context, actor *domain.User, in CreateTaskInput) (*domain.Task, error)
	ListMine(ctx context.Context, actor *domain.User) ([]*domain.Task, error)
	Get(ctx context.Context, actor *domain.User, id string) (*domain.Task, error)
	Update(ctx context.Context, actor *domain.User, id string, in UpdateTaskInput) (*domain.Task, error)
	Delete(ctx context.Context, actor *domain.User, id string) error
}
