package controllers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"testing"

	"inkwell/app/middleware"
	"inkwell/app/models"
	"inkwell/app/uploads"

	"github.com/stretchr/testify/require"
)

var (
	jane = &models.Identity{Email: "jane@example.com", Name: "Jane"}
	joe  = &models.Identity{Email: "joe@example.com", Name: "Joe"}
)

// multipartBody builds a multipart form with the given fields and, when
// fileName is set, a file part under UploadField.
func multipartBody(t *testing.T, fields map[string]string, fileName, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if fileName != "" {
		fw, err := mw.CreateFormFile(UploadField, fileName)
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

// as runs h with id stored in the request context, the way RequireAuth does.
func as(id *models.Identity, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h(w, r.WithContext(middleware.WithIdentity(r.Context(), id)))
	}
}

func newTestStorage(t *testing.T) *uploads.Storage {
	s, err := uploads.NewStorage(filepath.Join(t.TempDir(), "images"))
	require.NoError(t, err)
	return s
}
