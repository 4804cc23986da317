package user

import (
	"fmt"
	"strings"
	"time"
)

type Role string

const (
	RoleStudent    Role = "student"
	RoleInstructor Role = "instructor"
	RoleAdmin      Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleInstructor, RoleAdmin:
		return true
	default:
		return false
	}
}

// CanInstruct reports whether the role may author courses.
func (r Role) CanInstruct() bool {
	return r == RoleInstructor || r == RoleAdmin
}

func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// Principal is the authenticated caller resolved from an access token.
type Principal struct {
	UserID    string
	Role      Role
	SessionID string
	DeviceID  string
}

// Profile is a registered account with its public profile fields.
type Profile struct {
	ID           string
	Email        string
	PasswordHash string
	FullName     string
	AvatarURL    string
	Role         Role
	Bio          string
	Phone        string
	UniversityID string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (p Profile) ValidateBasic() error {
	if p.ID == "" {
		return fmt.Errorf("profile id is required")
	}
	if p.Email == "" || !strings.Contains(p.Email, "@") {
		return fmt.Errorf("valid email is required")
	}
	if p.PasswordHash == "" {
		return fmt.Errorf("password hash is required")
	}
	if !p.Role.Valid() {
		return fmt.Errorf("invalid role %q", p.Role)
	}

	return nil
}

// InstructorSummary is a public instructor listing row.
type InstructorSummary struct {
	Profile          Profile
	PublishedCourses int
}

type ListFilter struct {
	Role   Role
	Search string
	Limit  int
	Offset int
}

// RoleCounts holds the number of profiles per role.
type RoleCounts map[Role]int

func (c RoleCounts) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// NormalizeEmail lowercases and trims an email for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
