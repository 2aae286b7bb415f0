package models

import "time"

type Account struct {
	ID               string    `json:"id"`
	Email            string    `json:"email"`
	Name             string    `json:"name"`
	Role             Role      `json:"role"`
	OrganizationName string    `json:"organization_name,omitempty"`
	CollegeName      string    `json:"college_name,omitempty"`
	PasswordHash     string    `json:"password_hash,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// HasRole reports whether the account's role is one of roles.
func (a *Account) HasRole(roles ...Role) bool {
	if a == nil {
		return false
	}
	for _, role := range roles {
		if a.Role == role {
			return true
		}
	}
	return false
}

// Public returns a copy safe to hand to API clients.
func (a Account) Public() Account {
	a.PasswordHash = ""
	return a
}
