package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/99minutos/taskhub/internal/core/access"
	"github.com/99minutos/taskhub/internal/core/domain"
	"github.com/99minutos/taskhub/internal/core/ports"
)

var alice = &domain.User{ID: "u1", Username: "alice", Role: domain.RoleUser}

func sampleTask() *domain.Task {
	return &domain.Task{
		ID:          "t1",
		Title:       "Write report",
		Description: strPtr("quarterly"),
		OwnerID:     "u1",
		CreatedAt:   time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestTaskHandler_Create(t *testing.T) {
	e := newEcho()
	svc := &stubTaskService{
		createFn: func(_ context.Context, actor *domain.User, in ports.CreateTaskInput) (*domain.Task, error) {
			if actor != alice {
				t.Fatalf("actor not forwarded")
			}
			if in.Title != "Write report" || in.Description == nil || *in.Description != "quarterly" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return sampleTask(), nil
		},
	}

	c, rec := newRequest(e, http.MethodPost, "/tasks", `{"title":"Write report","description":"quarterly"}`, alice)
	if err := NewTaskHandler(svc).Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["id"] != "t1" || resp["owner_id"] != "u1" || resp["completed"] != false {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestTaskHandler_Create_TitleRequired(t *testing.T) {
	e := newEcho()
	svc := &stubTaskService{
		createFn: func(context.Context, *domain.User, ports.CreateTaskInput) (*domain.Task, error) {
			t.Fatalf("service should not be called")
			return nil, nil
		},
	}

	c, _ := newRequest(e, http.MethodPost, "/tasks", `{"description":"no title"}`, alice)
	err := NewTaskHandler(svc).Create(c)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestTaskHandler_Create_ManagerForbidden(t *testing.T) {
	e := newEcho()
	manager := &domain.User{ID: "m1", Role: domain.RoleManager}
	svc := &stubTaskService{
		createFn: func(context.Context, *domain.User, ports.CreateTaskInput) (*domain.Task, error) {
			return nil, domain.NewForbiddenError(access.ReasonCannotCreate)
		},
	}

	c, _ := newRequest(e, http.MethodPost, "/tasks", `{"title":"x"}`, manager)
	err := NewTaskHandler(svc).Create(c)
	if !errors.Is(err, domain.ErrAuthorization) || err.Error() != "Not allowed" {
		t.Fatalf("expected Not allowed, got %v", err)
	}
}

func TestTaskHandler_List(t *testing.T) {
	e := newEcho()
	svc := &stubTaskService{
		listFn: func(_ context.Context, actor *domain.User) ([]*domain.Task, error) {
			return []*domain.Task{sampleTask()}, nil
		},
	}

	c, rec := newRequest(e, http.MethodGet, "/tasks", "", alice)
	if err := NewTaskHandler(svc).List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp []taskResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 1 || resp[0].ID != "t1" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestTaskHandler_List_EmptyIsArray(t *testing.T) {
	e := newEcho()
	svc := &stubTaskService{
		listFn: func(context.Context, *domain.User) ([]*domain.Task, error) { return nil, nil },
	}

	c, rec := newRequest(e, http.MethodGet, "/tasks", "", alice)
	if err := NewTaskHandler(svc).List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got := rec.Body.String(); got != "[]\n" {
		t.Fatalf("expected empty array, got %q", got)
	}
}

func TestTaskHandler_Get(t *testing.T) {
	e := newEcho()
	svc := &stubTaskService{
		getFn: func(_ context.Context, _ *domain.User, id string) (*domain.Task, error) {
			if id != "t1" {
				t.Fatalf("unexpected id %q", id)
			}
			return sampleTask(), nil
		},
	}

	c, rec := newRequest(e, http.MethodGet, "/tasks/t1", "", alice)
	c.SetParamNames("id")
	c.SetParamValues("t1")

	if err := NewTaskHandler(svc).Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestTaskHandler_Update(t *testing.T) {
	e := newEcho()
	svc := &stubTaskService{
		updateFn: func(_ context.Context, _ *domain.User, id string, in ports.UpdateTaskInput) (*domain.Task, error) {
			if id != "t1" || in.Title != "Done" || !in.Completed || in.Description != nil {
				t.Fatalf("unexpected update: %s %+v", id, in)
			}
			task := sampleTask()
			task.Title, task.Completed, task.Description = in.Title, in.Completed, nil
			return task, nil
		},
	}

	c, rec := newRequest(e, http.MethodPut, "/tasks/t1", `{"title":"Done","completed":true}`, alice)
	c.SetParamNames("id")
	c.SetParamValues("t1")

	if err := NewTaskHandler(svc).Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["title"] != "Done" || resp["completed"] != true || resp["description"] != nil {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestTaskHandler_Update_NotFound(t *testing.T) {
	e := newEcho()
	svc := &stubTaskService{
		updateFn: func(context.Context, *domain.User, string, ports.UpdateTaskInput) (*domain.Task, error) {
			return nil, domain.ErrTaskNotFound
		},
	}

	c, _ := newRequest(e, http.MethodPut, "/tasks/nope", `{"title":"x"}`, alice)
	c.SetParamNames("id")
	c.SetParamValues("nope")

	if err := NewTaskHandler(svc).Update(c); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestTaskHandler_Delete(t *testing.T) {
	e := newEcho()
	deleted := ""
	svc := &stubTaskService{
		deleteFn: func(_ context.Context, _ *domain.User, id string) error {
			deleted = id
			return nil
		},
	}

	c, rec := newRequest(e, http.MethodDelete, "/tasks/t1", "", alice)
	c.SetParamNames("id")
	c.SetParamValues("t1")

	if err := NewTaskHandler(svc).Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if deleted != "t1" {
		t.Fatalf("expected t1 deleted, got %q", deleted)
	}
	if rec.Code != http.StatusOK || rec.Body.String() != "{\"message\":\"Task deleted\"}\n" {
		t.Fatalf("unexpected response %d %q", rec.Code, rec.Body.String())
	}
}

func TestTaskHandler_Delete_Forbidden(t *testing.T) {
	e := newEcho()
	svc := &stubTaskService{
		deleteFn: func(context.Context, *domain.User, string) error {
			return domain.NewForbiddenError(access.ReasonNotOwner)
		},
	}

	c, _ := newRequest(e, http.MethodDelete, "/tasks/t2", "", alice)
	c.SetParamNames("id")
	c.SetParamValues("t2")

	err := NewTaskHandler(svc).Delete(c)
	if !errors.Is(err, domain.ErrAuthorization) || err.Error() != "Not your task" {
		t.Fatalf("expected Not your task, got %v", err)
	}
}
