package handler

import (
	"context"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/taskhub/internal/api/middleware"
	"github.com/99minutos/taskhub/internal/core/domain"
	"github.com/99minutos/taskhub/internal/core/ports"
)

type stubAuthService struct {
	signupFn func(ctx context.Context, in ports.SignupInput) (*domain.User, error)
	loginFn  func(ctx context.Context, identifier, password string) (*ports.LoginResult, error)
}

func (s *stubAuthService) Signup(ctx context.Context, in ports.SignupInput) (*domain.User, error) {
	return s.signupFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, identifier, password string) (*ports.LoginResult, error) {
	return s.loginFn(ctx, identifier, password)
}

type stubTaskService struct {
	createFn func(ctx context.Context, actor *domain.User, in ports.CreateTaskInput) (*domain.Task, error)
	listFn   func(ctx context.Context, actor *domain.User) ([]*domain.Task, error)
	getFn    func(ctx context.Context, actor *domain.User, id string) (*domain.Task, error)
	updateFn func(ctx context.Context, actor *domain.User, id string, in ports.UpdateTaskInput) (*domain.Task, error)
	deleteFn func(ctx context.Context, actor *domain.User, id string) error
}

func (s *stubTaskService) Create(ctx context.Context, actor *domain.User, in ports.CreateTaskInput) (*domain.Task, error) {
	return s.createFn(ctx, actor, in)
}

func (s *stubTaskService) ListMine(ctx context.Context, actor *domain.User) ([]*domain.Task, error) {
	return s.listFn(ctx, actor)
}

func (s *stubTaskService) Get(ctx context.Context, actor *domain.User, id string) (*domain.Task, error) {
	return s.getFn(ctx, actor, id)
}

func (s *stubTaskService) Update(ctx context.Context, actor *domain.User, id string, in ports.UpdateTaskInput) (*domain.Task, error) {
	return s.updateFn(ctx, actor, id, in)
}

func (s *stubTaskService) Delete(ctx context.Context, actor *domain.User, id string) error {
	return s.deleteFn(ctx, actor, id)
}

type stubUserService struct {
	assignFn func(ctx context.Context, username, managerUsername string) error
}

func (s *stubUserService) AssignManager(ctx context.Context, username, managerUsername string) error {
	return s.assignFn(ctx, username, managerUsername)
}

func (s *stubUserService) CreateAdmin(context.Context, string, string, string) (*domain.User, error) {
	panic("not used by handlers")
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

// newRequest builds a context for method/target with an optional JSON body
// and actor.
func newRequest(e *echo.Echo, method, target, body string, actor *domain.User) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if actor != nil {
		middleware.SetActor(c, actor)
	}
	return c, rec
}

func strPtr(s string) *string { return &s }
