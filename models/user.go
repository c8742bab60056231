package models

// Role is the coarse permission level of a user
type Role string

// Known roles
const (
	RoleCitizen Role = "citizen"
	RoleAdmin   Role = "admin"
)

// User is the read-only view of a registered user
type User struct {
	ID    string `bson:"_id" json:"id"`
	Name  string `bson:"name" json:"name"`
	Email string `bson:"email" json:"email"`
	Role  Role   `bson:"role" json:"role"`
}

// Info returns the public summary of the user
func (u User) Info() *UserInfo {
	return &UserInfo{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

// Identity is the authenticated actor of a request
type Identity struct {
	ID    string
	Email string
	Role  Role
}

// IsAdmin reports whether the actor has the admin role
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}
