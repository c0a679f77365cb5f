package model

// Role is the closed set of user roles.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleCustomer:
		return true
	}
	return false
}

// RoleOrDefault returns the parsed role, falling back to customer for
// absent or unrecognized values.
func RoleOrDefault(s string) Role {
	r := Role(s)
	if !r.Valid() {
		return RoleCustomer
	}
	return r
}

// User represents an account in the system
type User struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"` // Do not expose password hash in JSON responses
	Phone        string `json:"phone"`
	Role         Role   `json:"role"`
}

// SignupRequest is the payload for creating a user account
type SignupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Phone    string `json:"phone" binding:"required"`
	Role     string `json:"role"`
}

// SigninRequest is the payload for logging in
type SigninRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateUserRequest carries a partial update; only non-nil fields are applied
type UpdateUserRequest struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
	Phone *string `json:"phone,omitempty"`
	Role  *string `json:"role,omitempty"`
}

// Empty reports whether the patch carries no fields at all.
func (r UpdateUserRequest) Empty() bool {
	return r.Name == nil && r.Email == nil && r.Phone == nil && r.Role == nil
}
