package domain

// Role distinguishes the three kinds of users.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleCoach   Role = "coach"
	RoleStudent Role = "student"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleCoach || r == RoleStudent
}

// DefaultName is used when a user signs in without a display name.
func (r Role) DefaultName() string {
	switch r {
	case RoleAdmin:
		return "Head Coach Wang"
	case RoleCoach:
		return "Coach Mike"
	case RoleStudent:
		return "Student Li"
	}
	return "User"
}

// User is the signed-in identity carried in the role token.
type User struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Role    Role   `json:"role"`
	GymName string `json:"gymName,omitempty"`
}

// Helper methods
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) IsCoach() bool {
	return u.Role == RoleCoach
}

func (u *User) IsStudent() bool {
	return u.Role == RoleStudent
}
