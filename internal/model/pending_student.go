package model

import "time"

// AdmissionStatus is the lifecycle state of a pending admission. A record
// only ever exists in the "pending" state: approval and rejection both
// consume it, so the terminal states are represented by absence.
type AdmissionStatus string

const AdmissionPending AdmissionStatus = "pending"

// Gender values accepted on admission forms.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

// PendingStudent is a prospective admission awaiting an admin decision,
// keyed by email.
type PendingStudent struct {
	ID                 int             `json:"id"`
	Email              string          `json:"email"`
	Name               string          `json:"name"`
	DOB                time.Time       `json:"dob"`
	Gender             Gender          `json:"gender"`
	ClassName          string          `json:"class_name"`
	Stream             *string         `json:"stream,omitempty"`
	ParentName         string          `json:"parent_name"`
	Phone              string          `json:"phone"`
	Address            string          `json:"address"`
	RegistrationNumber int             `json:"registration_number"`
	Status             AdmissionStatus `json:"status"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// AdmissionRequest is the public admission-form payload. Structural rules
// live in binding tags; rules conditional on the class catalog (stream
// required iff senior grade) are enforced by the admission service.
type AdmissionRequest struct {
	Name       string `json:"name" binding:"required,min=2,max=100"`
	Email      string `json:"email" binding:"required,email"`
	DOB        string `json:"dob" binding:"required"`
	Gender     Gender `json:"gender" binding:"required,oneof=Male Female Other"`
	ClassName  string `json:"class_name" binding:"required"`
	Stream     string `json:"stream" binding:"omitempty"`
	ParentName string `json:"parent_name" binding:"required,min=2,max=100"`
	Phone      string `json:"phone" binding:"required,len=11,numeric"`
	Address    string `json:"address" binding:"required,min=5,max=300"`
}

// AdmissionReceipt is returned to the applicant after submission.
type AdmissionReceipt struct {
	InsertedID         int `json:"inserted_id"`
	RegistrationNumber int `json:"registration_number"`
}
