package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"inkwell/app/models"

	"github.com/stretchr/testify/assert"
)

type stubVerifier map[string]*models.Identity

func (s stubVerifier) Verify(token string) (*models.Identity, error) {
	if id, ok := s[token]; ok {
		return id, nil
	}
	return nil, errors.New("bad token")
}

func TestRequireAuth(t *testing.T) {
	jane := &models.Identity{Email: "jane@example.com", Name: "Jane"}
	verifier := stubVerifier{"good": jane}

	reached := false
	handler := RequireAuth(verifier)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		assert.Equal(t, jane, IdentityFrom(r.Context()))
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name        string
		header      string
		wantStatus  int
		wantMessage string
		wantReached bool
	}{
		{name: "valid token", header: "Bearer good", wantStatus: http.StatusOK, wantReached: true},
		{name: "lowercase scheme", header: "bearer good", wantStatus: http.StatusOK, wantReached: true},
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized, wantMessage: "the token is missing"},
		{name: "wrong scheme", header: "Basic good", wantStatus: http.StatusUnauthorized, wantMessage: "the token is missing"},
		{name: "invalid token", header: "Bearer forged", wantStatus: http.StatusUnauthorized, wantMessage: "the token is invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reached = false
			req := httptest.NewRequest("GET", "/myposts", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantReached, reached)
			if tt.wantMessage != "" {
				assert.Contains(t, w.Body.String(), tt.wantMessage)
				assert.Contains(t, w.Body.String(), `"kind":"Unauthenticated"`)
			}
		})
	}
}

func TestIdentityFrom(t *testing.T) {
	assert.Nil(t, IdentityFrom(context.Background()))

	id := &models.Identity{Email: "jane@example.com"}
	assert.Equal(t, id, IdentityFrom(WithIdentity(context.Background(), id)))
}
