package models

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// Validate checks that every required field is present. Fields named in
// except are skipped.
func (p *Post) Validate(except ...string) error {
	var err error
	if len(except) > 0 {
		err = validate.StructExcept(p, except...)
	} else {
		err = validate.Struct(p)
	}
	if err != nil {
		return validationError(err)
	}
	return nil
}

// BeforeCreate assigns the identifier and creation time. Identifiers are
// UUIDv7 so they sort in creation order.
func (p *Post) BeforeCreate(now time.Time) {
	if p.ID == "" {
		p.ID = uuid.Must(uuid.NewV7()).String()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
}

// SetAuthor copies the author snapshot from id.
func (p *Post) SetAuthor(id *Identity) {
	p.Email = id.Email
	p.Name = id.Name
}

// OwnedBy reports whether id authored p.
func (p *Post) OwnedBy(id *Identity) bool {
	return id != nil && id.Email != "" && p.Email == id.Email
}

// Apply replaces the fields set in edit.
func (p *Post) Apply(edit PostEdit) {
	if edit.Title != "" {
		p.Title = edit.Title
	}
	if edit.Description != "" {
		p.Description = edit.Description
	}
	if edit.File != "" {
		p.File = edit.File
	}
}

// SortNewestFirst orders posts by creation time, newest first.
func SortNewestFirst(posts []*Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		if !posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].CreatedAt.After(posts[j].CreatedAt)
		}
		return posts[i].ID > posts[j].ID
	})
}
