package model

import "time"

// Subject is a taught subject tied to a catalog class.
type Subject struct {
	ID          int       `json:"id"`
	ClassID     int       `json:"class_id"`
	Name        string    `json:"name"`
	Code        string    `json:"code,omitempty"`
	TeacherName string    `json:"teacher_name,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SubjectRequest is the payload for creating or updating a subject.
type SubjectRequest struct {
	ClassID     int    `json:"class_id" binding:"required"`
	Name        string `json:"name" binding:"required,min=2,max=100"`
	Code        string `json:"code" binding:"omitempty,max=20"`
	TeacherName string `json:"teacher_name" binding:"omitempty,min=2,max=100"`
}
