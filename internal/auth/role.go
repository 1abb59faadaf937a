package auth

import "fmt"

// Role is the closed set of role claims supplied by the external identity
// provider.
type Role string

const (
	RoleUser  Role = "User"
	RoleAdmin Role = "Admin"
)

// ParseRole maps a raw role claim onto the closed enumeration.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleUser:
		return RoleUser, nil
	case RoleAdmin:
		return RoleAdmin, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// Caller is the identity a request acts under: the user id and role claim
// reported by the identity provider.
type Caller struct {
	UserID string
	Role   Role
}

// CanModify is the single ownership policy for every mutating listing
// operation: the owner may modify their own listings, an admin may modify
// any.
func (c Caller) CanModify(ownerID string) bool {
	return c.UserID == ownerID || c.Role == RoleAdmin
}
