package controllers

import (
	"errors"
	"io/fs"
	"log/slog"
	"net/http"

	"inkwell/app/apperr"
	"inkwell/app/uploads"

	"github.com/gorilla/mux"
)

// FileController serves uploaded files back by name
type FileController struct {
	files  *uploads.Storage
	logger *slog.Logger
}

// NewFileController creates a new FileController
func NewFileController(files *uploads.Storage, logger *slog.Logger) *FileController {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileController{files: files, logger: logger}
}

// Show streams the named file. Directories are never listed.
func (fc *FileController) Show(w http.ResponseWriter, r *http.Request) {
	f, info, err := fc.files.Open(mux.Vars(r)["name"])
	if errors.Is(err, fs.ErrNotExist) {
		sendError(w, r, fc.logger, apperr.Wrap(apperr.NotFound, "file not found", err))
		return
	}
	if err != nil {
		sendError(w, r, fc.logger, apperr.Wrap(apperr.Store, "failed to open file", err))
		return
	}
	defer f.Close()
	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}
