package models

type Role string

const (
	RoleStudent   Role = "student"
	RoleOrganizer Role = "organizer"
	RoleBrand     Role = "brand"
	RoleAdmin     Role = "admin"
)

var Roles = []Role{RoleStudent, RoleOrganizer, RoleBrand, RoleAdmin}

func (r Role) Valid() bool {
	for _, role := range Roles {
		if r == role {
			return true
		}
	}
	return false
}

func ParseRole(s string) (Role, error) {
	role := Role(s)
	if !role.Valid() {
		return "", NewValidationError("role", "unknown role "+s)
	}
	return role, nil
}
