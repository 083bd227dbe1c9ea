package models

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// DefaultRole is assigned to every new user. Roles are stored but not
// consulted for authorization.
const DefaultRole = "visitor"

// Validate checks that every required field is present.
func (u *User) Validate() error {
	if err := validate.Struct(u); err != nil {
		return validationError(err)
	}
	return nil
}

// BeforeCreate assigns the identifier, default role and creation time.
func (u *User) BeforeCreate(now time.Time) {
	if u.ID == "" {
		u.ID = uuid.Must(uuid.NewV7()).String()
	}
	if u.Role == "" {
		u.Role = DefaultRole
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
}

// Identity returns the claims a session token carries for u.
func (u *User) Identity() *Identity {
	return &Identity{Email: u.Email, Name: u.Name, Role: u.Role}
}

// SortUsersNewestFirst orders users by creation time, newest first.
func SortUsersNewestFirst(users []*User) {
	sort.SliceStable(users, func(i, j int) bool {
		if !users[i].CreatedAt.Equal(users[j].CreatedAt) {
			return users[i].CreatedAt.After(users[j].CreatedAt)
		}
		return users[i].ID > users[j].ID
	})
}
