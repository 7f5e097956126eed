package domain

import "time"

const (
	RoleAdmin           = "admin"
	RoleProjectManager  = "project_manager"
	RoleTechnicalLeader = "technical_leader"
	RoleTeamMember      = "team_member"
	RoleGuestUser       = "guest_user"
)

// Roles is the fixed set of valid role claims. Role checks are
// set-membership checks, not hierarchy checks.
var Roles = map[string]struct{}{
	RoleAdmin:           {},
	RoleProjectManager:  {},
	RoleTechnicalLeader: {},
	RoleTeamMember:      {},
	RoleGuestUser:       {},
}

// ValidRole reports whether role is one of the enumerated roles.
func ValidRole(role string) bool {
	_, ok := Roles[role]
	return ok
}

// User models an authenticated actor in the system.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email,omitempty"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Principal is the identity derived from a verified credential. It is
// ephemeral: built per-request by the auth middleware, never persisted.
type Principal struct {
	UserID   string
	Username string
	Role     string
}

// UserContact is the minimal projection needed to address a user, used by
// the monitors and the critical error reporter.
type UserContact struct {
	UserID   string
	Email    string
	Username string
}
