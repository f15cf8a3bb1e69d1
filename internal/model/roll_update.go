package model

import "time"

// RollUpdate records a student's roll-number change within a class.
type RollUpdate struct {
	ID           int       `json:"id"`
	StudentEmail string    `json:"student_email"`
	ClassName    string    `json:"class_name"`
	PreviousRoll int       `json:"previous_roll"`
	NewRoll      int       `json:"new_roll"`
	Reason       string    `json:"reason,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// RollUpdateRequest is the payload for recording a roll change.
type RollUpdateRequest struct {
	StudentEmail string `json:"student_email" binding:"required,email"`
	ClassName    string `json:"class_name" binding:"required"`
	PreviousRoll int    `json:"previous_roll" binding:"omitempty,min=1"`
	NewRoll      int    `json:"new_roll" binding:"required,min=1"`
	Reason       string `json:"reason" binding:"omitempty,max=300"`
}
