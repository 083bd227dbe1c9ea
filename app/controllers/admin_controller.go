package controllers

import (
	"log/slog"
	"net/http"

	"inkwell/app/services"

	"github.com/gorilla/mux"
)

// AdminController exposes the user and post maintenance endpoints
type AdminController struct {
	admin  *services.AdminService
	logger *slog.Logger
}

// NewAdminController creates a new AdminController
func NewAdminController(admin *services.AdminService, logger *slog.Logger) *AdminController {
	if logger == nil {
		logger = slog.Default()
	}
	return &AdminController{admin: admin, logger: logger}
}

// Users lists every user
func (ac *AdminController) Users(w http.ResponseWriter, r *http.Request) {
	users, err := ac.admin.ListUsers()
	if err != nil {
		sendError(w, r, ac.logger, err)
		return
	}
	sendJSON(w, http.StatusOK, users)
}

// Posts lists every post
func (ac *AdminController) Posts(w http.ResponseWriter, r *http.Request) {
	posts, err := ac.admin.ListPosts()
	if err != nil {
		sendError(w, r, ac.logger, err)
		return
	}
	sendJSON(w, http.StatusOK, posts)
}

// DeleteUser removes a user and their posts
func (ac *AdminController) DeleteUser(w http.ResponseWriter, r *http.Request) {
	removed, err := ac.admin.DeleteUser(mux.Vars(r)["id"])
	if err != nil {
		sendError(w, r, ac.logger, err)
		return
	}
	sendJSON(w, http.StatusOK, map[string]interface{}{
		"message":      "User and associated posts deleted successfully",
		"deletedPosts": removed,
	})
}
