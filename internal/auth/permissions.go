package auth

import "errors"

// Roles, lowest to highest privilege.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
	RoleOwner = "owner"
)

var roleRank = map[string]int{
	RoleUser:  1,
	RoleAdmin: 2,
	RoleOwner: 3,
}

// HasRoleAtLeast reports whether role meets the required privilege level.
func HasRoleAtLeast(role, required string) bool {
	r, ok := roleRank[role]
	if !ok {
		return false
	}
	req, ok := roleRank[required]
	if !ok {
		return false
	}
	return r >= req
}

// IsAdmin reports whether the claims belong to an admin or the owner.
func IsAdmin(claims *Claims) bool {
	return HasRoleAtLeast(claims.Role, RoleAdmin)
}

// IsOwner reports whether the claims belong to the owner account.
func IsOwner(claims *Claims) bool {
	return claims.Role == RoleOwner
}

// ValidateRole checks the role value.
func ValidateRole(role string) error {
	switch role {
	case RoleUser, RoleAdmin, RoleOwner:
		return nil
	default:
		return errors.New("invalid role")
	}
}
