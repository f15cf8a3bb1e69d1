package model

import "time"

// Teacher is the public staff-directory entry. It is separate from a
// User holding the teacher role: the directory is editorial content
// managed by admins, not an identity record.
type Teacher struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	PhotoURL  string    `json:"photo_url,omitempty"`
	Subject   string    `json:"subject,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TeacherRequest is the payload for creating or updating a directory entry.
type TeacherRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"omitempty,email"`
	Phone    string `json:"phone" binding:"omitempty,len=11,numeric"`
	PhotoURL string `json:"photo_url" binding:"omitempty,url"`
	Subject  string `json:"subject" binding:"omitempty,max=100"`
}
