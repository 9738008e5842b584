package domain

import "time"

type Role string

const (
	RoleOwner   Role = "owner"
	RoleAuditor Role = "auditor"
)

// ValidRole reports whether r is one of the closed set of roles.
func ValidRole(r Role) bool {
	return r == RoleOwner || r == RoleAuditor
}

type User struct {
	ID           int32      `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	PhoneNumber  string     `json:"phone_number"`
	PasswordHash string     `json:"-"`
	Role         Role       `json:"role"`
	IsStaff      bool       `json:"is_staff"`
	IsSuperuser  bool       `json:"is_superuser"`
	TokenVersion int32      `json:"-"` // bumped on password change to revoke issued tokens
	DateJoined   time.Time  `json:"date_joined"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
}

func (u *User) IsOwner() bool {
	return u.Role == RoleOwner
}

func (u *User) IsAuditor() bool {
	return u.Role == RoleAuditor
}

// OwnedBy treats a user record as owned by itself, so the shared
// object-level ownership check covers profile access too.
func (u *User) OwnedBy(userID int32) bool {
	return u.ID == userID
}
