package model

import "time"

// Notice is a school announcement.
type Notice struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Author    string    `json:"author,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NoticeRequest is the payload for creating or updating a notice.
type NoticeRequest struct {
	Title  string `json:"title" binding:"required,min=3,max=200"`
	Body   string `json:"body" binding:"required,min=3"`
	Author string `json:"author" binding:"omitempty,max=100"`
}
