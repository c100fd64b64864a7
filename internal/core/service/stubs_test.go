package service

import (
	"context"
	"sort"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/99minutos/taskhub/internal/core/domain"
	"github.com/99minutos/taskhub/internal/core/security"
)

var nopLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// In-memory user repository
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	mu        sync.Mutex
	byID      map[string]*domain.User
	createErr error
	findCalls int
}

func newStubUserRepo(users ...*domain.User) *stubUserRepo {
	r := &stubUserRepo{byID: make(map[string]*domain.User)}
	for _, u := range users {
		r.byID[u.ID] = cloneUser(u)
	}
	return r
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	if u.ManagerID != nil {
		id := *u.ManagerID
		clone.ManagerID = &id
	}
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	for _, u := range r.byID {
		if u.Email == user.Email {
			return domain.ErrEmailExists
		}
		if u.Username == user.Username {
			return domain.ErrUsernameExists
		}
	}
	r.byID[user.ID] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) find(match func(*domain.User) bool) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.findCalls++
	for _, u := range r.byID {
		if match(u) {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.ID == id })
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.Email == email })
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.Username == username })
}

func (r *stubUserRepo) FindByIdentifier(_ context.Context, identifier string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.Email == identifier || u.Username == identifier })
}

func (r *stubUserRepo) SetManager(_ context.Context, userID, managerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	id := managerID
	u.ManagerID = &id
	return nil
}

// ---------------------------------------------------------------------------
// In-memory task repository
// ---------------------------------------------------------------------------

type stubTaskRepo struct {
	mu   sync.Mutex
	byID map[string]*domain.Task
}

func newStubTaskRepo(tasks ...*domain.Task) *stubTaskRepo {
	r := &stubTaskRepo{byID: make(map[string]*domain.Task)}
	for _, t := range tasks {
		clone := *t
		r.byID[t.ID] = &clone
	}
	return r
}

func (r *stubTaskRepo) Create(_ context.Context, task *domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *task
	r.byID[task.ID] = &clone
	return nil
}

func (r *stubTaskRepo) ListByOwner(_ context.Context, ownerID string) ([]*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*domain.Task{}
	for _, t := range r.byID {
		if t.OwnerID == ownerID {
			clone := *t
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *stubTaskRepo) FindByID(_ context.Context, id string) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	clone := *t
	return &clone, nil
}

func (r *stubTaskRepo) Update(_ context.Context, task *domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[task.ID]; !ok {
		return domain.ErrTaskNotFound
	}
	clone := *task
	r.byID[task.ID] = &clone
	return nil
}

func (r *stubTaskRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return domain.ErrTaskNotFound
	}
	delete(r.byID, id)
	return nil
}

// ---------------------------------------------------------------------------
// Hasher, cache
// ---------------------------------------------------------------------------

// syncHasher runs bcrypt inline at minimum cost.
type syncHasher struct {
	h *security.BcryptHasher
}

func newSyncHasher() *syncHasher {
	return &syncHasher{h: security.NewBcryptHasher(bcrypt.MinCost)}
}

func (s *syncHasher) Hash(_ context.Context, plaintext string) (string, error) {
	return s.h.Hash(plaintext)
}

func (s *syncHasher) Verify(_ context.Context, plaintext, hash string) (bool, error) {
	return s.h.Verify(plaintext, hash), nil
}

// failingHasher stands in for a hasher whose workers are gone.
type failingHasher struct {
	err error
}

func (f failingHasher) Hash(context.Context, string) (string, error) { return "", f.err }

func (f failingHasher) Verify(context.Context, string, string) (bool, error) { return false, f.err }

type mapUserCache struct {
	users       map[string]*domain.User
	invalidated []string
}

func newMapUserCache() *mapUserCache {
	return &mapUserCache{users: make(map[string]*domain.User)}
}

func (c *mapUserCache) Get(_ context.Context, id string) (*domain.User, bool) {
	u, ok := c.users[id]
	return cloneUser(u), ok
}

func (c *mapUserCache) Set(_ context.Context, user *domain.User) {
	c.users[user.ID] = cloneUser(user)
}

func (c *mapUserCache) Invalidate(_ context.Context, id string) {
	delete(c.users, id)
	c.invalidated = append(c.invalidated, id)
}

func strPtr(s string) *string { return &s }
