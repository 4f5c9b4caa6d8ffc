package domain

// Actor is the authenticated identity an operation is performed on behalf of.
type Actor struct {
	UserID   uint
	Username string
	Role     Role
	operator bool
}

// Operator returns the identity of the command line tool and scheduled jobs.
// It holds every admin capability without a user row behind it.
func Operator() *Actor {
	return &Actor{Username: "operator", Role: RoleAdmin, operator: true}
}

// Capability names an operation class gated by role
type Capability string

const (
	CapManageCatalog Capability = "manage_catalog"
	CapViewReports   Capability = "view_reports"
	CapManageUsers   Capability = "manage_users"
)

var capabilityRoles = map[Capability][]Role{
	CapManageCatalog: {RoleAdmin},
	CapViewReports:   {RoleAdmin},
	CapManageUsers:   {RoleAdmin},
}

// Authorize returns ErrUnauthorized for an anonymous actor and ErrForbidden
// when the actor's role does not grant the capability.
func Authorize(actor *Actor, capability Capability) error {
	if actor == nil || (actor.UserID == 0 && !actor.operator) {
		return ErrUnauthorized
	}
	for _, role := range capabilityRoles[capability] {
		if actor.Role == role {
			return nil
		}
	}
	return ErrForbidden
}
