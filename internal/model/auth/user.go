package auth

import (
	"time"
)

// User is a community member. IDs are UUID strings to avoid ObjectID
// conversions at the API boundary.
type User struct {
	ID              string     `bson:"_id,omitempty" json:"id"`
	Username        string     `bson:"username" json:"username"`
	Email           string     `bson:"email" json:"email"`
	Password        string     `bson:"password" json:"-"`
	FullName        string     `bson:"full_name,omitempty" json:"fullName,omitempty"`
	Role            UserRole   `bson:"role" json:"role"`
	Bio             string     `bson:"bio,omitempty" json:"bio,omitempty"`
	Location        string     `bson:"location,omitempty" json:"location,omitempty"`
	Skills          []string   `bson:"skills,omitempty" json:"skills,omitempty"`
	Interests       []string   `bson:"interests,omitempty" json:"interests,omitempty"`
	IsMentor        bool       `bson:"is_mentor" json:"isMentor"`
	MentorshipAreas []string   `bson:"mentorship_areas,omitempty" json:"mentorshipAreas,omitempty"`
	IsActive        bool       `bson:"is_active" json:"isActive"`
	LastLogin       *time.Time `bson:"last_login,omitempty" json:"lastLogin,omitempty"`
	CreatedAt       time.Time  `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time  `bson:"updated_at" json:"updatedAt"`
}

// ProfileUpdate carries the editable profile fields; nil means "leave
// unchanged", a pointer to the zero value clears the field.
type ProfileUpdate struct {
	FullName        *string
	Email           *string
	Bio             *string
	Location        *string
	Skills          []string
	Interests       []string
	MentorshipAreas []string
}

// UserRole is the account role.
type UserRole string

const (
	RoleUser   UserRole = "user"
	RoleMentor UserRole = "mentor"
	RoleAdmin  UserRole = "admin"
)

// IsValid checks that the role is one of the known roles.
func (r UserRole) IsValid() bool {
	return r == RoleUser || r == RoleMentor || r == RoleAdmin
}

// Level returns the role's position in the fixed hierarchy
// user(1) < mentor(2) < admin(3). Unknown roles rank below user.
func (r UserRole) Level() int {
	switch r {
	case RoleUser:
		return 1
	case RoleMentor:
		return 2
	case RoleAdmin:
		return 3
	default:
		return 0
	}
}

// AtLeast reports whether r is at or above min in the hierarchy.
func (r UserRole) AtLeast(min UserRole) bool {
	return r.Level() >= min.Level()
}

// String returns the role string.
func (r UserRole) String() string {
	return string(r)
}

// MentorCapable reports whether the role carries the mentor capability.
// Mentors and admins can be requested as mentors.
func (r UserRole) MentorCapable() bool {
	return r == RoleMentor || r == RoleAdmin
}
