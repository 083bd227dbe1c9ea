package controllers

import (
	"log/slog"
	"net/http"

	"inkwell/app/middleware"
	"inkwell/app/models"
	"inkwell/app/services"

	"github.com/gorilla/mux"
)

// UploadField is the multipart field carrying a post's file.
const UploadField = "file"

// PostController handles HTTP requests for blog posts
type PostController struct {
	postService *services.PostService
	logger      *slog.Logger
}

// NewPostController creates a new PostController
func NewPostController(postService *services.PostService, logger *slog.Logger) *PostController {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostController{postService: postService, logger: logger}
}

// Create handles creating a new post with an attached file
func (pc *PostController) Create(w http.ResponseWriter, r *http.Request) {
	file, closer, err := readUpload(r, UploadField)
	if err != nil {
		sendError(w, r, pc.logger, err)
		return
	}
	if closer != nil {
		defer closer.Close()
	}

	f, err := readFields(r, "title", "description")
	if err != nil {
		sendError(w, r, pc.logger, err)
		return
	}

	id := middleware.IdentityFrom(r.Context())
	if _, err := pc.postService.CreatePost(id, f["title"], f["description"], file); err != nil {
		sendError(w, r, pc.logger, err)
		return
	}
	sendJSON(w, http.StatusOK, Success)
}

// Index handles listing all posts, newest first
func (pc *PostController) Index(w http.ResponseWriter, r *http.Request) {
	posts, err := pc.postService.ListPosts()
	if err != nil {
		sendError(w, r, pc.logger, err)
		return
	}
	sendJSON(w, http.StatusOK, posts)
}

// Show handles displaying a single post
func (pc *PostController) Show(w http.ResponseWriter, r *http.Request) {
	post, err := pc.postService.GetPost(mux.Vars(r)["id"])
	if err != nil {
		sendError(w, r, pc.logger, err)
		return
	}
	sendJSON(w, http.StatusOK, post)
}

// Edit handles a partial update; the file is replaced only when a new
// one is uploaded
func (pc *PostController) Edit(w http.ResponseWriter, r *http.Request) {
	file, closer, err := readUpload(r, UploadField)
	if err != nil {
		sendError(w, r, pc.logger, err)
		return
	}
	if closer != nil {
		defer closer.Close()
	}

	f, err := readFields(r, "title", "description")
	if err != nil {
		sendError(w, r, pc.logger, err)
		return
	}

	id := middleware.IdentityFrom(r.Context())
	edit := models.PostEdit{Title: f["title"], Description: f["description"]}
	if _, err := pc.postService.EditPost(id, mux.Vars(r)["id"], edit, file); err != nil {
		sendError(w, r, pc.logger, err)
		return
	}
	sendJSON(w, http.StatusOK, Success)
}

// Mine handles listing the caller's posts
func (pc *PostController) Mine(w http.ResponseWriter, r *http.Request) {
	posts, err := pc.postService.ListMyPosts(middleware.IdentityFrom(r.Context()))
	if err != nil {
		sendError(w, r, pc.logger, err)
		return
	}
	sendJSON(w, http.StatusOK, posts)
}

// Delete handles deleting a post
func (pc *PostController) Delete(w http.ResponseWriter, r *http.Request) {
	id := middleware.IdentityFrom(r.Context())
	if err := pc.postService.DeletePost(id, mux.Vars(r)["id"]); err != nil {
		sendError(w, r, pc.logger, err)
		return
	}
	sendJSON(w, http.StatusOK, Success)
}
