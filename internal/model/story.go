package model

import "time"

// Story is a school-life article shown on the public site.
type Story struct {
	ID         int       `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	ImageURL   string    `json:"image_url,omitempty"`
	AuthorName string    `json:"author_name,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// StoryRequest is the payload for creating or updating a story.
type StoryRequest struct {
	Title      string `json:"title" binding:"required,min=3,max=200"`
	Content    string `json:"content" binding:"required,min=3"`
	ImageURL   string `json:"image_url" binding:"omitempty,url"`
	AuthorName string `json:"author_name" binding:"omitempty,max=100"`
}
