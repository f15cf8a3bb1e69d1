package model

import "time"

// Role governs authorization decisions across the whole API.
type Role string

const (
	RoleUser    Role = "user"
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
	RoleAdmin   Role = "admin"
)

// ValidRole reports whether r is one of the four known roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleUser, RoleStudent, RoleTeacher, RoleAdmin:
		return true
	}
	return false
}

// Shift is a teacher's working shift.
type Shift string

const (
	ShiftMorning   Shift = "Morning"
	ShiftAfternoon Shift = "Afternoon"
)

// ClassRef links a teacher assignment to a catalog class.
type ClassRef struct {
	ClassID   int    `json:"class_id" binding:"required"`
	ClassName string `json:"class_name" binding:"required"`
}

// SubjectAssignment describes the subjects a teacher covers in one class.
type SubjectAssignment struct {
	ClassID   int      `json:"class_id" binding:"required"`
	ClassName string   `json:"class_name" binding:"required"`
	Subjects  []string `json:"subjects" binding:"required,min=1,dive,required"`
	RoomNo    string   `json:"room_no" binding:"required"`
	ClassTime string   `json:"class_time" binding:"required"`
}

// User is the identity record keyed by email. The teacher-only fields
// (Shift, ClassTime, AssignedClasses, Subjects) are nil for every other
// role; the role-assignment workflow is the only writer allowed to set
// them and any transition away from "teacher" clears them.
type User struct {
	ID                int                 `json:"id"`
	Email             string              `json:"email"`
	Name              string              `json:"name"`
	Phone             string              `json:"phone,omitempty"`
	PhotoURL          string              `json:"photo_url,omitempty"`
	Role              Role                `json:"role"`
	EnrolledClassName *string             `json:"enrolled_class_name,omitempty"`
	Stream            *string             `json:"stream,omitempty"`
	Shift             *Shift              `json:"shift,omitempty"`
	ClassTime         *string             `json:"class_time,omitempty"`
	AssignedClasses   []ClassRef          `json:"assigned_classes,omitempty"`
	Subjects          []SubjectAssignment `json:"subjects,omitempty"`
	CreatedAt         time.Time           `json:"created_at"`
	UpdatedAt         time.Time           `json:"updated_at"`
}

// IsTeacher reports whether the user currently holds the teacher role.
func (u *User) IsTeacher() bool { return u.Role == RoleTeacher }

// LoginRequest is the payload for exchanging an identity-provider ID token
// for the stored user record and a session token.
type LoginRequest struct {
	IDToken string `json:"id_token" binding:"required"`
}

// LoginResponse is returned after a successful login.
type LoginResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// UpdateProfileRequest is the payload for the self-or-admin profile update.
// Role changes ride on the same PATCH but are admin-gated and handled by
// the role-assignment workflow, not here.
type UpdateProfileRequest struct {
	Name     string `json:"name" binding:"omitempty,min=2,max=100"`
	Phone    string `json:"phone" binding:"omitempty,len=11,numeric"`
	PhotoURL string `json:"photo_url" binding:"omitempty,url"`
}

// AssignRoleRequest is the payload for the admin-gated role change.
// The teacher-only fields are required when Role is "teacher" and are
// rejected otherwise; validation happens in the role service because the
// rules are conditional on the target role.
type AssignRoleRequest struct {
	Role            Role                `json:"role" binding:"required"`
	Shift           *Shift              `json:"shift,omitempty"`
	ClassTime       *string             `json:"class_time,omitempty"`
	AssignedClasses []ClassRef          `json:"assigned_classes,omitempty"`
	Subjects        []SubjectAssignment `json:"subjects,omitempty"`
}
