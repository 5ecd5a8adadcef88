package auth

import (
	"github.com/vaughan-dsouza/jemaat/internal/apperr"
	"github.com/vaughan-dsouza/jemaat/internal/models"
)

// Operation names an action guarded by the gate.
type Operation string

const (
	OpListUsers    Operation = "users.list"
	OpSearchUsers  Operation = "users.search"
	OpChangeRole   Operation = "users.role"
	OpDeleteUser   Operation = "users.delete"
	OpCreateMember Operation = "members.create"
	OpUpdateMember Operation = "members.update"
	OpDeleteMember Operation = "members.delete"
	OpReadMembers  Operation = "members.read"
	OpExport       Operation = "members.export"
	OpDashboard    Operation = "dashboard.read"

	OpReadServants  Operation = "servants.read"
	OpWriteServants Operation = "servants.write"
)

var adminOnly = map[Operation]bool{
	OpListUsers:    true,
	OpSearchUsers:  true,
	OpChangeRole:   true,
	OpDeleteUser:   true,
	OpCreateMember: true,
	OpUpdateMember: true,
	OpDeleteMember: true,

	OpWriteServants: true,
}

// RequiresAdmin reports whether op is restricted to admins.
func RequiresAdmin(op Operation) bool {
	return adminOnly[op]
}

// Authorize permits or denies op for an already authenticated user. A nil
// user is an authentication failure, never a forbidden one.
func Authorize(u *models.User, op Operation) error {
	if u == nil {
		return apperr.ErrMissingToken
	}
	if adminOnly[op] && !u.IsAdmin() {
		return apperr.ErrAdminRequired
	}
	return nil
}

// ForbidSelf rejects actions that target the actor's own account.
func ForbidSelf(actor *models.User, targetIDs ...string) error {
	if actor == nil {
		return apperr.ErrMissingToken
	}
	for _, id := range targetIDs {
		if id == actor.ID {
			return apperr.ErrSelfAction
		}
	}
	return nil
}
