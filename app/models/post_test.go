package models

import (
	"testing"
	"time"

	"inkwell/app/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostValidation(t *testing.T) {
	valid := func() *Post {
		return &Post{
			Title:       "Valid Title",
			Description: "A description",
			File:        "file_1700000000000.png",
			Email:       "jane@example.com",
			Name:        "Jane",
		}
	}

	tests := []struct {
		name    string
		mutate  func(p *Post)
		wantMsg string
	}{
		{name: "valid post", mutate: func(p *Post) {}},
		{name: "missing title", mutate: func(p *Post) { p.Title = "" }, wantMsg: "title is required"},
		{name: "missing description", mutate: func(p *Post) { p.Description = "" }, wantMsg: "description is required"},
		{name: "missing file", mutate: func(p *Post) { p.File = "" }, wantMsg: "file is required"},
		{name: "missing author", mutate: func(p *Post) { p.Email = "" }, wantMsg: "email is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid()
			tt.mutate(p)
			err := p.Validate()
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, apperr.Is(err, apperr.Validation))
			assert.Equal(t, tt.wantMsg, apperr.BodyOf(err).Message)
		})
	}
}

func TestPostValidateExcept(t *testing.T) {
	p := &Post{Title: "Title", Description: "Body", Email: "jane@example.com", Name: "Jane"}

	assert.Error(t, p.Validate())
	assert.NoError(t, p.Validate("File"))
}

func TestPostBeforeCreate(t *testing.T) {
	post := &Post{Title: "Test Post"}
	now := time.Now()

	assert.True(t, post.CreatedAt.IsZero())
	post.BeforeCreate(now)
	assert.NotEmpty(t, post.ID)
	assert.Equal(t, now, post.CreatedAt)

	id := post.ID
	post.BeforeCreate(now.Add(time.Hour))
	assert.Equal(t, id, post.ID)
	assert.Equal(t, now, post.CreatedAt)
}

func TestPostApply(t *testing.T) {
	post := &Post{Title: "Old", Description: "Old body", File: "old.png"}

	t.Run("without file keeps reference", func(t *testing.T) {
		post.Apply(PostEdit{Title: "New"})
		assert.Equal(t, "New", post.Title)
		assert.Equal(t, "Old body", post.Description)
		assert.Equal(t, "old.png", post.File)
	})

	t.Run("with file replaces reference", func(t *testing.T) {
		post.Apply(PostEdit{File: "new.png"})
		assert.Equal(t, "New", post.Title)
		assert.Equal(t, "new.png", post.File)
	})
}

func TestPostOwnedBy(t *testing.T) {
	post := &Post{Email: "jane@example.com"}

	assert.True(t, post.OwnedBy(&Identity{Email: "jane@example.com"}))
	assert.False(t, post.OwnedBy(&Identity{Email: "joe@example.com"}))
	assert.False(t, post.OwnedBy(nil))
	assert.False(t, (&Post{}).OwnedBy(&Identity{}))
}

func TestSortNewestFirst(t *testing.T) {
	base := time.Now()
	a := &Post{ID: "a", CreatedAt: base}
	b := &Post{ID: "b", CreatedAt: base.Add(time.Second)}
	c := &Post{ID: "c", CreatedAt: base.Add(-time.Second)}
	tie := &Post{ID: "d", CreatedAt: base}

	posts := []*Post{a, b, c, tie}
	SortNewestFirst(posts)

	assert.Equal(t, []*Post{b, tie, a, c}, posts)
}
