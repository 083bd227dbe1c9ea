package middleware

import (
	"context"
	"net/http"
	"strings"

	"inkwell/app/apperr"
	"inkwell/app/models"
)

type contextKey struct{}

var identityKey contextKey

// TokenVerifier validates a session token and returns its identity.
type TokenVerifier interface {
	Verify(token string) (*models.Identity, error)
}

// RequireAuth rejects requests without a valid bearer token before they
// reach the handler. Verified identities are stored in the request
// context; see IdentityFrom.
func RequireAuth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r)
			if token == "" {
				apperr.Write(w, apperr.New(apperr.Unauthenticated, "the token is missing"))
				return
			}
			id, err := verifier.Verify(token)
			if err != nil {
				apperr.Write(w, apperr.Wrap(apperr.Unauthenticated, "the token is invalid", err))
				return
			}
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}

// BearerToken extracts the token from an "Authorization: Bearer" header.
func BearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id *models.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFrom returns the identity stored by RequireAuth, or nil.
func IdentityFrom(ctx context.Context) *models.Identity {
	id, _ := ctx.Value(identityKey).(*models.Identity)
	return id
}
