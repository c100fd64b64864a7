package domain

import "errors"

// Error kinds. Every domain error unwraps to exactly one of these so the
// transport layer can map it to a status code.
var (
	ErrValidation     = errors.New("validation error")
	ErrConflict       = errors.New("conflict")
	ErrAuthentication = errors.New("authentication error")
	ErrAuthorization  = errors.New("authorization error")
	ErrNotFound       = errors.New("not found")
)

// Error is a caller-facing failure: Message is safe to return to clients.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

// NewValidationError wraps a field validator reason.
func NewValidationError(msg string) *Error {
	return &Error{Kind: ErrValidation, Message: msg}
}

// NewForbiddenError builds an authorization failure with the given reason.
func NewForbiddenError(reason string) *Error {
	return &Error{Kind: ErrAuthorization, Message: reason}
}

var (
	ErrInvalidRole    = &Error{Kind: ErrValidation, Message: "Invalid role. Only 'user' or 'manager' can be chosen."}
	ErrEmailExists    = &Error{Kind: ErrConflict, Message: "Email already exists"}
	ErrUsernameExists = &Error{Kind: ErrConflict, Message: "Username already exists"}

	ErrInvalidCredentials = &Error{Kind: ErrAuthentication, Message: "Invalid credentials"}
	ErrInvalidPassword    = &Error{Kind: ErrAuthentication, Message: "Invalid password"}
	ErrInvalidToken       = &Error{Kind: ErrAuthentication, Message: "Invalid token"}
	ErrExpiredToken       = &Error{Kind: ErrAuthentication, Message: "Token has expired"}
	ErrUnknownSubject     = &Error{Kind: ErrAuthentication, Message: "User not found for token"}

	ErrTaskNotFound    = &Error{Kind: ErrNotFound, Message: "Task not found"}
	ErrUserNotFound    = &Error{Kind: ErrNotFound, Message: "User not found"}
	ErrManagerNotFound = &Error{Kind: ErrNotFound, Message: "Manager not found"}

	ErrPermissionDenied = &Error{Kind: ErrAuthorization, Message: "You do not have permission to perform this action"}

	ErrSelfManagement = &Error{Kind: ErrValidation, Message: "A user cannot be their own manager"}
	ErrManagerCycle   = &Error{Kind: ErrConflict, Message: "Assignment would create a management cycle"}
)
