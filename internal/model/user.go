package model

// Roles assignable to a user.  The role is decided at the database level and
// never settable through the API; registration always produces RoleUser.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User mirrors the 'users' table.  PasswordHash is never serialized.
type User struct {
	ID           uint64 `json:"user_id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"`
}
