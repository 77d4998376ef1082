package models

import "strings"

// Role is the role an administrator assigns to a member
type Role string

const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
)

// User is the authenticated member as returned by /api/me and /api/login
type User struct {
	ID          int    `json:"id"`
	Email       string `json:"email"`
	Name        string `json:"name,omitempty"`
	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
	ChapterName string `json:"chapter_name,omitempty"`

	// IsAdmin grants meal authoring, attendance and late plate moderation
	IsAdmin bool `json:"is_admin"`

	// IsOwner sits above admin: review moderation and access code regeneration
	IsOwner bool `json:"is_owner"`

	EmailVerified bool `json:"email_verified,omitempty"`
}

// IsStaff reports whether the user can open the admin views
func (u *User) IsStaff() bool {
	return u != nil && (u.IsAdmin || u.IsOwner)
}

// DisplayName picks the friendliest name the server gave us
func (u *User) DisplayName() string {
	if u == nil {
		return "Member"
	}
	first := strings.TrimSpace(u.FirstName)
	last := strings.TrimSpace(u.LastName)
	switch {
	case first != "" && last != "":
		return first + " " + last
	case first != "":
		return first
	case strings.TrimSpace(u.Name) != "":
		return strings.TrimSpace(u.Name)
	default:
		return "Member"
	}
}

// UserRef is the abbreviated user embedded in reviews, recommendations and
// attendance records
type UserRef struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}
