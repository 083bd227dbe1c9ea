package services

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"inkwell/app/uploads"

	"github.com/stretchr/testify/require"
)

// failingFiles is a FileStore whose Save always fails.
type failingFiles struct{}

func (failingFiles) Save(*uploads.File) (string, error) { return "", errors.New("disk full") }
func (failingFiles) Remove(string) error                { return nil }

func newTestStorage(t *testing.T) *uploads.Storage {
	s, err := uploads.NewStorage(filepath.Join(t.TempDir(), "images"))
	require.NoError(t, err)
	return s
}

func upload(name, content string) *uploads.File {
	return &uploads.File{Field: "file", Name: name, Content: strings.NewReader(content)}
}

func storedFiles(t *testing.T, s *uploads.Storage) []string {
	entries, err := os.ReadDir(s.Dir())
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}
