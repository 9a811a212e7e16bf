package model

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Principal is the authenticated actor of a request.
type Principal struct {
	UserID int64
	Roles  []Role
}

// HasRole reports whether the principal holds role. Every principal holds
// RoleUser.
func (p Principal) HasRole(role Role) bool {
	if role == RoleUser {
		return true
	}
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

func (p Principal) IsAdmin() bool {
	return p.HasRole(RoleAdmin)
}
