package users

import "strings"

type Role string

const (
	RoleOwner  Role = "owner"
	RoleBarber Role = "barber"
)

// ParseRole maps a claim value onto a Role. Anything that is not a barber is
// treated as the shop owner, which is what signup assigns.
func ParseRole(s string) Role {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(RoleBarber):
		return RoleBarber
	default:
		return RoleOwner
	}
}

// Subscriber is the identity resolved for a request. It is owned by the
// identity directory and read-only here.
type Subscriber struct {
	UserID string
	Email  string
	Role   Role
}
