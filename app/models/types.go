package models

import "time"

// User is a registered account. Email identifies the user.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name" validate:"required"`
	Email     string    `json:"email" validate:"required"`
	Password  string    `json:"-" validate:"required"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// Post is a blog post. Email and Name are a snapshot of the author
// as of post creation and are not re-synced when the user changes.
type Post struct {
	ID          string    `json:"id"`
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description" validate:"required"`
	File        string    `json:"file" validate:"required"`
	Email       string    `json:"email" validate:"required"`
	Name        string    `json:"name" validate:"required"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Identity is the verified caller carried by a session token.
type Identity struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role,omitempty"`
}

// PostEdit holds the fields a partial edit may replace. Empty fields
// leave the stored value untouched.
type PostEdit struct {
	Title       string
	Description string
	File        string
}
