package registry

import (
	"fmt"
	"log/slog"

	"github.com/amlesh-kumar01/NFT-Event-Ticketing/interfaces"
)

// HasRole reports whether the principal holds the role.
func (r *Registry) HasRole(role interfaces.RoleID, principal interfaces.Principal) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.hasRole(role, principal)
}

// GrantRole grants a role to a principal. Administrator only. Granting an
// already-held role is a no-op, not an error.
func (r *Registry) GrantRole(caller interfaces.Principal, role interfaces.RoleID, principal interfaces.Principal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.hasRole(interfaces.RoleAdmin, caller) {
		return fmt.Errorf("%w: only an administrator may grant roles", interfaces.ErrUnauthorized)
	}
	if principal.IsZero() {
		return fmt.Errorf("%w: cannot grant a role to the zero principal", interfaces.ErrInvalidArgument)
	}

	r.grantRole(role, principal)
	r.log.Info("role granted",
		slog.String("role", role.Name()),
		slog.String("principal", principal.String()),
		slog.String("caller", caller.String()))
	return nil
}

// RevokeRole removes a role from a principal. Administrator only. Revoking
// a role the principal does not hold is a no-op.
func (r *Registry) RevokeRole(caller interfaces.Principal, role interfaces.RoleID, principal interfaces.Principal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.hasRole(interfaces.RoleAdmin, caller) {
		return fmt.Errorf("%w: only an administrator may revoke roles", interfaces.ErrUnauthorized)
	}

	if holders, ok := r.roles[role]; ok {
		delete(holders, principal)
	}
	r.log.Info("role revoked",
		slog.String("role", role.Name()),
		slog.String("principal", principal.String()),
		slog.String("caller", caller.String()))
	return nil
}

// hasRole checks a grant without taking the lock.
func (r *Registry) hasRole(role interfaces.RoleID, principal interfaces.Principal) bool {
	holders, ok := r.roles[role]
	if !ok {
		return false
	}
	_, held := holders[principal]
	return held
}

// grantRole records a grant without authorization checks or locking. Used
// at construction and when event creation names a new organizer.
func (r *Registry) grantRole(role interfaces.RoleID, principal interfaces.Principal) {
	holders, ok := r.roles[role]
	if !ok {
		holders = make(map[interfaces.Principal]struct{})
		r.roles[role] = holders
	}
	holders[principal] = struct{}{}
}
