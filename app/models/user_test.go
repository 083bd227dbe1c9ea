package models

import (
	"testing"
	"time"

	"inkwell/app/apperr"

	"github.com/stretchr/testify/assert"
)

func TestUserValidation(t *testing.T) {
	tests := []struct {
		name    string
		user    *User
		wantErr bool
	}{
		{
			name:    "valid user",
			user:    &User{Name: "Jane", Email: "jane@example.com", Password: "hash"},
			wantErr: false,
		},
		{
			name:    "missing name",
			user:    &User{Email: "jane@example.com", Password: "hash"},
			wantErr: true,
		},
		{
			name:    "missing email",
			user:    &User{Name: "Jane", Password: "hash"},
			wantErr: true,
		},
		{
			name:    "missing password",
			user:    &User{Name: "Jane", Email: "jane@example.com"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.user.Validate()
			if tt.wantErr {
				assert.True(t, apperr.Is(err, apperr.Validation))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUserBeforeCreate(t *testing.T) {
	user := &User{Name: "Jane", Email: "jane@example.com"}
	now := time.Now()

	user.BeforeCreate(now)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, DefaultRole, user.Role)
	assert.Equal(t, now, user.CreatedAt)

	admin := &User{Role: "admin"}
	admin.BeforeCreate(now)
	assert.Equal(t, "admin", admin.Role)
}

func TestUserIdentity(t *testing.T) {
	user := &User{Name: "Jane", Email: "jane@example.com", Role: DefaultRole}

	assert.Equal(t, &Identity{Email: "jane@example.com", Name: "Jane", Role: DefaultRole}, user.Identity())
}
