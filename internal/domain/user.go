package domain

import "strings"

// Role is fixed at login for the lifetime of the session.
type Role string

const (
	RoleUser  Role = "User"
	RoleAdmin Role = "Admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	}
	return false
}

// RoleForEmail is the sign-in form's rule: any email mentioning "admin" signs in
// as an administrator.
func RoleForEmail(email string) Role {
	if strings.Contains(email, "admin") {
		return RoleAdmin
	}
	return RoleUser
}

type User struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Role    Role   `json:"role"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// DisplayNameFromEmail capitalizes the first letter of the email's local part.
func DisplayNameFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	if local == "" {
		return ""
	}
	r := []rune(local)
	return strings.ToUpper(string(r[0])) + string(r[1:])
}
