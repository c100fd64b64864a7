// Package access decides whether an actor may act on a task. The functions
// here are pure: callers load the actor and the task owner beforehand.
package access

import "github.com/99minutos/taskhub/internal/core/domain"

// Operation is an action on an existing task.
type Operation string

const (
	OpRead   Operation = "read"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

const (
	ReasonNotOwner     = "Not your task"
	ReasonNotManaged   = "Not your managed user's task"
	ReasonInvalidRole  = "Invalid role"
	ReasonCannotCreate = "Not allowed"
)

// Decision is the outcome of an access check. Reason is empty when allowed.
type Decision struct {
	Allowed bool
	Reason  string
}

// Err returns nil for an allowed decision and an authorization error
// carrying the reason otherwise.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	return domain.NewForbiddenError(d.Reason)
}

func allow() Decision { return Decision{Allowed: true} }

func deny(reason string) Decision { return Decision{Reason: reason} }

// CanAct decides whether actor may perform op on a task owned by owner.
// Read, update and delete currently share one rule set.
func CanAct(actor, owner *domain.User, _ Operation) Decision {
	switch actor.Role {
	case domain.RoleAdmin:
		return allow()
	case domain.RoleManager:
		if owner.ReportsTo(actor.ID) {
			return allow()
		}
		return deny(ReasonNotManaged)
	case domain.RoleUser:
		if owner.ID == actor.ID {
			return allow()
		}
		return deny(ReasonNotOwner)
	default:
		return deny(ReasonInvalidRole)
	}
}

// CanCreate decides whether actor may create tasks. Managers may not.
func CanCreate(actor *domain.User) Decision {
	switch actor.Role {
	case domain.RoleUser, domain.RoleAdmin:
		return allow()
	default:
		return deny(ReasonCannotCreate)
	}
}
