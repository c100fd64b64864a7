package domain

import "time"

// Role is the closed set of roles a user can hold.
type Role string

const (
	RoleUser    Role = "user"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)

// Valid reports whether r is one of the fixed roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleManager, RoleAdmin:
		return true
	}
	return false
}

// SignupRole resolves the role requested at signup. Empty means "user";
// admin accounts cannot be self-registered.
func SignupRole(requested string) (Role, error) {
	switch Role(requested) {
	case "":
		return RoleUser, nil
	case RoleUser, RoleManager:
		return Role(requested), nil
	default:
		return "", ErrInvalidRole
	}
}

// User models an account. ManagerID, when set, references a user whose role
// is exactly RoleManager.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	ManagerID    *string   `json:"manager_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// ReportsTo reports whether u is managed by the user with the given id.
func (u *User) ReportsTo(managerID string) bool {
	return u.ManagerID != nil && *u.ManagerID == managerID
}
