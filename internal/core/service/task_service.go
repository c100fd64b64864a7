package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/99minutos/taskhub/internal/core/access"
	"github.com/99minutos/taskhub/internal/core/domain"
	"github.com/99minutos/taskhub/internal/core/ports"
)

var errTitleRequired = domain.NewValidationError("Title is required")

// TaskService runs every task operation through the access resolver.
type TaskService struct {
	tasks  ports.TaskRepository
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewTaskService(tasks ports.TaskRepository, users ports.UserRepository, logger zerolog.Logger) *TaskService {
	return &TaskService{tasks: tasks, users: users, logger: logger}
}

// Create stores a new task owned by actor.
func (s *TaskService) Create(ctx context.Context, actor *domain.User, in ports.CreateTaskInput) (*domain.Task, error) {
	if err := access.CanCreate(actor).Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, errTitleRequired
	}

	task := &domain.Task{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		OwnerID:     actor.ID,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		s.logger.Error().Err(err).Str("owner_id", actor.ID).Msg("failed to create task")
		return nil, err
	}

	s.logger.Info().Str("task_id", task.ID).Str("owner_id", actor.ID).Msg("task created")
	return task, nil
}

// ListMine returns the tasks owned by actor.
func (s *TaskService) ListMine(ctx context.Context, actor *domain.User) ([]*domain.Task, error) {
	return s.tasks.ListByOwner(ctx, actor.ID)
}

// Get returns a task actor may read.
func (s *TaskService) Get(ctx context.Context, actor *domain.User, id string) (*domain.Task, error) {
	return s.authorize(ctx, actor, id, access.OpRead)
}

// Update replaces title, description and completed.
func (s *TaskService) Update(ctx context.Context, actor *domain.User, id string, in ports.UpdateTaskInput) (*domain.Task, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, errTitleRequired
	}

	task, err := s.authorize(ctx, actor, id, access.OpUpdate)
	if err != nil {
		return nil, err
	}

	task.Title = in.Title
	task.Description = in.Description
	task.Completed = in.Completed
	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}

	s.logger.Info().Str("task_id", id).Str("actor_id", actor.ID).Msg("task updated")
	return task, nil
}

// Delete removes a task permanently.
func (s *TaskService) Delete(ctx context.Context, actor *domain.User, id string) error {
	if _, err := s.authorize(ctx, actor, id, access.OpDelete); err != nil {
		return err
	}
	if err := s.tasks.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Str("task_id", id).Str("actor_id", actor.ID).Msg("task deleted")
	return nil
}

// authorize loads the task and its owner and applies the access rules. A
// missing task is reported before any permission check.
func (s *TaskService) authorize(ctx context.Context, actor *domain.User, id string, op access.Operation) (*domain.Task, error) {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	owner := actor
	if task.OwnerID != actor.ID {
		owner, err = s.users.FindByID(ctx, task.OwnerID)
		if err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				return nil, fmt.Errorf("task %s references missing owner %s", task.ID, task.OwnerID)
			}
			return nil, err
		}
	}

	if d := access.CanAct(actor, owner, op); !d.Allowed {
		s.logger.Debug().
			Str("task_id", id).
			Str("actor_id", actor.ID).
			Str("role", string(actor.Role)).
			Str("operation", string(op)).
			Str("reason", d.Reason).
			Msg("task access denied")
		return nil, d.Err()
	}
	return task, nil
}
