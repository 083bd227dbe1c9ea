package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"

	"inkwell/app/apperr"
	"inkwell/app/uploads"
)

// Success is the body returned by operations with nothing else to report.
const Success = "Success"

// maxUploadMemory is how much of a multipart body is held in memory
// before spilling to temporary files.
const maxUploadMemory = 32 << 20

// Helper methods for consistent response handling

func sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func sendError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	if apperr.KindOf(err) == apperr.Store {
		logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}
	apperr.Write(w, err)
}

func isJSON(r *http.Request) bool {
	mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return mt == "application/json"
}

// readFields returns the named string fields from a JSON object body or,
// for any other content type, from the parsed form.
func readFields(r *http.Request, names ...string) (map[string]string, error) {
	fields := make(map[string]string, len(names))
	if isJSON(r) {
		var body map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
			return nil, apperr.Wrap(apperr.Validation, "invalid JSON body", err)
		}
		for _, n := range names {
			if s, ok := body[n].(string); ok {
				fields[n] = s
			}
		}
		return fields, nil
	}
	for _, n := range names {
		fields[n] = r.FormValue(n)
	}
	return fields, nil
}

// readUpload returns the file sent in field, or nil when the request
// carries none. The caller closes the returned closer.
func readUpload(r *http.Request, field string) (*uploads.File, io.Closer, error) {
	if isJSON(r) {
		return nil, nil, nil
	}
	if r.MultipartForm == nil {
		err := r.ParseMultipartForm(maxUploadMemory)
		if errors.Is(err, http.ErrNotMultipart) {
			return nil, nil, nil
		}
		if err != nil {
			return nil, nil, apperr.Wrap(apperr.Validation, "invalid multipart body", err)
		}
	}
	f, fh, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, apperr.Wrap(apperr.Validation, "invalid upload", err)
	}
	return &uploads.File{Field: field, Name: fh.Filename, Content: f}, f, nil
}
