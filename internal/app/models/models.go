package models

// Role is the single role carried by a session. Each protected subtree of
// the portal names exactly one required role.
type Role string

const (
	RoleStudent  Role = "student"
	RoleLecturer Role = "lecturer"
	RoleAdmin    Role = "admin"
)

// Valid reports whether r is one of the three portal roles. Sessions
// carrying anything else are treated as absent.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleLecturer, RoleAdmin:
		return true
	}
	return false
}

// Home returns the landing path of the role's portal. The access guard
// redirects a wrong-role session here instead of rendering the subtree.
func (r Role) Home() string {
	switch r {
	case RoleLecturer:
		return "/lecturer"
	case RoleAdmin:
		return "/admin"
	default:
		return "/student"
	}
}

// User is an authenticated platform account as returned by the data service.
type User struct {
	ID    string `json:"id" db:"id"`
	Name  string `json:"name" db:"name"`
	Email string `json:"email" db:"email"`
	Role  Role   `json:"role" db:"role"`
}
