package handler

import (
	"errors"

	"github.com/99minutos/taskhub/internal/core/domain"
)

// outcome labels an operation result for the auth metrics.
func outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, domain.ErrValidation):
		return "invalid"
	case errors.Is(err, domain.ErrConflict):
		return "conflict"
	case errors.Is(err, domain.ErrAuthentication):
		return "unauthorized"
	default:
		return "error"
	}
}
