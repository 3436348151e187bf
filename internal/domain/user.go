package domain

import "time"

// Role is the platform role of a user.
type Role string

const (
	RoleRenter Role = "RENTER"
	RoleHost   Role = "HOST"
	RoleAdmin  Role = "ADMIN"
)

// User represents a verified platform identity. The trip engine only reads
// the identifier and role; everything else belongs to the identity layer.
type User struct {
	ID        string
	Name      string
	Email     string
	Role      Role
	Verified  bool
	CreatedAt time.Time
}

// IsRenter reports whether the user may book vehicles.
func (u *User) IsRenter() bool { return u.Role == RoleRenter }

// IsHost reports whether the user may list vehicles.
func (u *User) IsHost() bool { return u.Role == RoleHost }

// IsAdmin reports whether the user has administrative privileges.
func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }
