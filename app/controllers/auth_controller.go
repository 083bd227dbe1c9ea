package controllers

import (
	"log/slog"
	"net/http"

	"inkwell/app/apperr"
	"inkwell/app/middleware"
	"inkwell/app/services"
)

// AuthController handles registration, login and the session endpoints
type AuthController struct {
	auth   *services.AuthService
	logger *slog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(auth *services.AuthService, logger *slog.Logger) *AuthController {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthController{auth: auth, logger: logger}
}

// Me returns the identity of the verified caller
func (ac *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	id := middleware.IdentityFrom(r.Context())
	if id == nil {
		sendError(w, r, ac.logger, apperr.New(apperr.Unauthenticated, "authentication required"))
		return
	}
	sendJSON(w, http.StatusOK, map[string]string{"email": id.Email, "name": id.Name})
}

// Register creates a user from a JSON or form body
func (ac *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	f, err := readFields(r, "name", "email", "password")
	if err != nil {
		sendError(w, r, ac.logger, err)
		return
	}

	user, err := ac.auth.Register(f["name"], f["email"], f["password"])
	if err != nil {
		sendError(w, r, ac.logger, err)
		return
	}
	sendJSON(w, http.StatusCreated, user)
}

// Login exchanges credentials for a session token
func (ac *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	f, err := readFields(r, "email", "password")
	if err != nil {
		sendError(w, r, ac.logger, err)
		return
	}

	token, err := ac.auth.Login(f["email"], f["password"])
	if err != nil {
		sendError(w, r, ac.logger, err)
		return
	}
	sendJSON(w, http.StatusOK, map[string]string{"token": token})
}

// Logout is stateless; clients discard their token
func (ac *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, http.StatusOK, Success)
}
