package service

import (
	"errors"

	"github.com/sportconnect/sportconnect-api/internal/domain"
)

var ErrSelfAdminChange = errors.New("admins cannot modify or delete their own account")

// CanModifyAdmin is the single authorization rule for account administration:
// only admins may act, and never on themselves. Every admin route that
// mutates an account goes through this check.
func CanModifyAdmin(actor, target domain.User) bool {
	return actor.IsAdmin && actor.ID != target.ID
}
