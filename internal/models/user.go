package models

// Role is the access level of a user account. Stored as text, parsed
// and validated on the way out of the database so a mistyped role can
// never grant privileges.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// ParseRole maps a stored role string to a known Role. Anything
// unrecognized degrades to RoleUser.
func ParseRole(s string) Role {
	if s == string(RoleAdmin) {
		return RoleAdmin
	}
	return RoleUser
}

// User represents a user account in the todo service.
type User struct {
	ID         int64  `json:"id"`
	Email      string `json:"email"`
	Username   string `json:"username"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	HashedPass string `json:"-"` // Never expose this to the client
	IsActive   bool   `json:"isActive"`
	Role       Role   `json:"role"`
}
