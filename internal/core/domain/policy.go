package domain

// Operation identifies a protected API operation in the access policy table.
type Operation string

const (
	OpTaskCreate        Operation = "tasks:create"
	OpTaskComment       Operation = "tasks:comment"
	OpTaskRead          Operation = "tasks:read"
	OpUserUpdateEmail   Operation = "users:update_email"
	OpUserUpdatePass    Operation = "users:update_password"
	OpNotificationsRead Operation = "users:notifications:read"
	OpAdminUsers        Operation = "admin:users"
)

// policies maps each operation to the set of roles allowed to perform it.
// The table is the single source of truth consumed by the RBAC middleware;
// routes never declare role sets inline.
var policies = map[Operation][]string{
	OpTaskCreate:        {RoleAdmin, RoleProjectManager, RoleTechnicalLeader},
	OpTaskComment:       {RoleAdmin, RoleProjectManager, RoleTechnicalLeader, RoleTeamMember},
	OpTaskRead:          {RoleAdmin, RoleProjectManager, RoleTechnicalLeader, RoleTeamMember, RoleGuestUser},
	OpUserUpdateEmail:   {RoleAdmin, RoleProjectManager, RoleTechnicalLeader, RoleTeamMember},
	OpUserUpdatePass:    {RoleAdmin, RoleProjectManager, RoleTechnicalLeader, RoleTeamMember},
	OpNotificationsRead: {RoleAdmin, RoleProjectManager, RoleTechnicalLeader, RoleTeamMember, RoleGuestUser},
	OpAdminUsers:        {RoleAdmin},
}

// AllowedRoles returns the roles permitted to perform op. Unknown operations
// map to an empty set, denying everyone.
func AllowedRoles(op Operation) []string {
	return policies[op]
}
