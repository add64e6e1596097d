package user

import "strings"

const (
	RoleManager = "manager"
	RoleAdmin   = "admin"
)

// Principal is the authenticated caller. Only the auth middleware builds it;
// everything downstream reads it from the request context.
type Principal struct {
	UserID string
	Email  string
	Roles  []string
}

func (p Principal) HasRole(role string) bool {
	role = strings.TrimSpace(role)
	if role == "" {
		return true
	}
	for _, candidate := range p.Roles {
		if strings.EqualFold(candidate, role) || strings.EqualFold(candidate, RoleAdmin) {
			return true
		}
	}
	return false
}
