package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/99minutos/taskhub/internal/core/domain"
)

var admin = &domain.User{ID: "a1", Username: "root", Role: domain.RoleAdmin}

func TestAdminHandler_AssignManager(t *testing.T) {
	e := newEcho()
	svc := &stubUserService{
		assignFn: func(_ context.Context, username, managerUsername string) error {
			if username != "alice" || managerUsername != "bob" {
				t.Fatalf("unexpected args %q %q", username, managerUsername)
			}
			return nil
		},
	}

	c, rec := newRequest(e, http.MethodPut, "/admin/assign-manager", `{"user_username":"alice","manager_username":"bob"}`, admin)
	if err := NewAdminHandler(svc).AssignManager(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAdminHandler_AssignManager_MissingFields(t *testing.T) {
	e := newEcho()
	svc := &stubUserService{
		assignFn: func(context.Context, string, string) error {
			t.Fatalf("service should not be called")
			return nil
		},
	}

	c, _ := newRequest(e, http.MethodPut, "/admin/assign-manager", `{"user_username":"alice"}`, admin)
	err := NewAdminHandler(svc).AssignManager(c)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAdminHandler_AssignManager_ServiceErrors(t *testing.T) {
	for _, want := range []error{domain.ErrUserNotFound, domain.ErrManagerNotFound, domain.ErrSelfManagement} {
		e := newEcho()
		svc := &stubUserService{assignFn: func(context.Context, string, string) error { return want }}

		c, _ := newRequest(e, http.MethodPut, "/admin/assign-manager", `{"user_username":"a","manager_username":"b"}`, admin)
		if err := NewAdminHandler(svc).AssignManager(c); !errors.Is(err, want) {
			t.Fatalf("expected %v, got %v", want, err)
		}
	}
}
