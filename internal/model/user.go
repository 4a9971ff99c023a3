package model

// Role is the marketplace role a user registered with
type Role string

const (
	RoleClient     Role = "CLIENT"
	RoleFreelancer Role = "FREELANCER"
)

// Roles returns the selectable roles in registration order
func Roles() []Role {
	return []Role{RoleClient, RoleFreelancer}
}

// User is the identity returned by the auth endpoints
type User struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      Role   `json:"role,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// IsClient returns true if the user posts projects
func (u *User) IsClient() bool {
	return u != nil && u.Role == RoleClient
}

// Session is the authenticated identity and credential held by the client
type Session struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// Credentials is the sign-in payload
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the sign-up payload
type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
}
