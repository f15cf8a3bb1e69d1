package model

import "time"

// Student is the enrolled-student record, keyed by email. It is a
// distinct row from User: profile fields (name, phone, photo) are
// mirrored from User best-effort, while ClassName is owned exclusively
// by the admission workflow and immutable through the student-facing
// update path.
type Student struct {
	ID                 int       `json:"id"`
	Email              string    `json:"email"`
	Name               string    `json:"name"`
	Phone              string    `json:"phone,omitempty"`
	PhotoURL           string    `json:"photo_url,omitempty"`
	DOB                time.Time `json:"dob"`
	Gender             Gender    `json:"gender"`
	ParentName         string    `json:"parent_name"`
	Address            string    `json:"address"`
	ClassName          string    `json:"class_name"`
	Stream             *string   `json:"stream,omitempty"`
	RegistrationNumber int       `json:"registration_number"`
	ApprovedAt         time.Time `json:"approved_at"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// UpdateStudentRequest is the student-facing update payload. ClassName is
// deliberately absent: enrollment class is set on approval and never
// changed through this path.
type UpdateStudentRequest struct {
	Name       string `json:"name" binding:"omitempty,min=2,max=100"`
	Phone      string `json:"phone" binding:"omitempty,len=11,numeric"`
	PhotoURL   string `json:"photo_url" binding:"omitempty,url"`
	ParentName string `json:"parent_name" binding:"omitempty,min=2,max=100"`
	Address    string `json:"address" binding:"omitempty,min=5,max=300"`
}
