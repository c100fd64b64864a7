package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/99minutos/taskhub/internal/core/domain"
	"github.com/99minutos/taskhub/internal/core/ports"
)

// maxManagerChain bounds the walk up the management chain during cycle
// detection.
const maxManagerChain = 64

// Registrar creates accounts with an explicit role.
type Registrar interface {
	Register(ctx context.Context, email, username, password string, role domain.Role) (*domain.User, error)
}

// UserService implements administrative user operations.
type UserService struct {
	users     ports.UserRepository
	registrar Registrar
	cache     ports.UserCache
	logger    zerolog.Logger
}

// NewUserService returns a UserService. cache may be nil.
func NewUserService(users ports.UserRepository, registrar Registrar, cache ports.UserCache, logger zerolog.Logger) *UserService {
	if cache == nil {
		cache = NopUserCache{}
	}
	return &UserService{users: users, registrar: registrar, cache: cache, logger: logger}
}

// AssignManager makes the user named managerUsername the manager of the user
// named username. The manager must hold the manager role; self-assignment
// and assignments closing a management cycle are rejected.
func (s *UserService) AssignManager(ctx context.Context, username, managerUsername string) error {
	target, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	manager, err := s.users.FindByUsername(ctx, managerUsername)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrManagerNotFound
		}
		return err
	}
	if manager.Role != domain.RoleManager {
		return domain.ErrManagerNotFound
	}

	if target.ID == manager.ID {
		return domain.ErrSelfManagement
	}
	if err := s.checkCycle(ctx, target.ID, manager); err != nil {
		return err
	}

	if err := s.users.SetManager(ctx, target.ID, manager.ID); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, target.ID)

	s.logger.Info().
		Str("user_id", target.ID).
		Str("manager_id", manager.ID).
		Msg("manager assigned")
	return nil
}

// checkCycle walks from manager upwards and fails if targetID appears.
func (s *UserService) checkCycle(ctx context.Context, targetID string, manager *domain.User) error {
	seen := map[string]struct{}{manager.ID: {}}
	cur := manager
	for i := 0; i < maxManagerChain && cur.ManagerID != nil; i++ {
		next := *cur.ManagerID
		if next == targetID {
			return domain.ErrManagerCycle
		}
		if _, ok := seen[next]; ok {
			return nil
		}
		seen[next] = struct{}{}

		parent, err := s.users.FindByID(ctx, next)
		if err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				return nil
			}
			return err
		}
		cur = parent
	}
	return nil
}

// CreateAdmin creates an admin account. It is only reachable from the CLI.
func (s *UserService) CreateAdmin(ctx context.Context, email, username, password string) (*domain.User, error) {
	return s.registrar.Register(ctx, email, username, password, domain.RoleAdmin)
}
