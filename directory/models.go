// Package directory manages the portal's account records and the
// administrator-gated operations over them.
package directory

import "time"

// Role is the access level of an account.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleMember   Role = "member"
	RoleCustomer Role = "customer"
)

// Valid reports whether r is one of the three recognized roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleMember, RoleCustomer:
		return true
	}
	return false
}

// User is a directory entry as persisted in the users collection. The
// password field holds only the bcrypt hash; the JSON names match the
// on-disk collection layout.
type User struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	Name         string     `json:"name"`
	PasswordHash string     `json:"password"`
	Role         Role       `json:"role"`
	Active       bool       `json:"isActive"`
	CreatedAt    time.Time  `json:"createdAt"`
	LastLogin    *time.Time `json:"lastLogin,omitempty"`
}

func (u *User) EntityID() string { return u.ID }

func (u *User) StampNew(id string, createdAt time.Time) {
	u.ID = id
	u.CreatedAt = createdAt
}

// PublicUser is the externally visible view of a User. It never carries the
// password hash.
type PublicUser struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	Role      Role       `json:"role"`
	Active    bool       `json:"isActive"`
	CreatedAt time.Time  `json:"createdAt"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
}

// Public returns the redacted view of the user.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
		LastLogin: u.LastLogin,
	}
}
