// Package entity contains the core business objects of the project.
package entity

import "strings"

// Role represents the coarse-grained permission label attached to an identity.
type Role string

const (
	// RoleAdmin marks a privileged back-office account.
	RoleAdmin Role = "ADMIN"
	// RoleCustomer marks a buying account.
	RoleCustomer Role = "CUSTOMER"
	// RoleDesigner marks a student designer account.
	RoleDesigner Role = "DESIGNER"
)

// AuthorityPrefix is prepended to role names when they are installed in the
// request security context, so gate comparisons are uniform no matter what
// the raw token claim carried.
const AuthorityPrefix = "ROLE_"

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is one of the closed enumeration values.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleCustomer, RoleDesigner:
		return true
	default:
		return false
	}
}

// Authority returns the role in its prefixed security-context form,
// e.g. "ROLE_ADMIN".
func (r Role) Authority() string {
	return AuthorityPrefix + string(r)
}

// ParseRole normalizes a raw role string (any casing, with or without the
// authority prefix) into a Role. The second return value reports whether the
// input mapped onto the closed enumeration.
func ParseRole(raw string) (Role, bool) {
	normalized := strings.ToUpper(strings.TrimSpace(raw))
	normalized = strings.TrimPrefix(normalized, AuthorityPrefix)

	role := Role(normalized)

	return role, role.IsValid()
}
