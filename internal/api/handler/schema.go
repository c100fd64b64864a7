package handler

import (
	"time"

	"github.com/99minutos/taskhub/internal/core/domain"
)

// --- Auth ---

type signupRequest struct {
	Email    string `json:"email" example:"alice@example.com"`
	Username string `json:"username" example:"alice"`
	Password string `json:"password" example:"Str0ng!Pass"`
	Role     string `json:"role,omitempty" example:"user"`
}

type signupResponse struct {
	Message string `json:"message" example:"Signup successful"`
	Role    string `json:"role" example:"user"`
}

type loginRequest struct {
	Identifier string `json:"identifier" validate:"required" example:"alice"`
	Password   string `json:"password" validate:"required" example:"Str0ng!Pass"`
}

type loginResponse struct {
	Message     string `json:"message" example:"Login successful"`
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type" example:"bearer"`
}

type meResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

// --- Tasks ---

type createTaskRequest struct {
	Title       string  `json:"title" validate:"required" example:"Write report"`
	Description *string `json:"description,omitempty"`
}

type updateTaskRequest struct {
	Title       string  `json:"title" validate:"required" example:"Write report"`
	Description *string `json:"description"`
	Completed   bool    `json:"completed"`
}

type taskResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Completed   bool      `json:"completed"`
	OwnerID     string    `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
}

func toTaskResponse(t *domain.Task) taskResponse {
	return taskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		OwnerID:     t.OwnerID,
		CreatedAt:   t.CreatedAt,
	}
}

func toTaskResponses(tasks []*domain.Task) []taskResponse {
	out := make([]taskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, toTaskResponse(t))
	}
	return out
}

// --- Admin ---

type assignManagerRequest struct {
	UserUsername    string `json:"user_username" validate:"required" example:"alice"`
	ManagerUsername string `json:"manager_username" validate:"required" example:"bob"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}
