// Package uploads stores files attached to posts under the public
// directory that the HTTP layer serves back by name.
package uploads

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// maxNameAttempts bounds the search for a free name when several
// uploads land in the same millisecond.
const maxNameAttempts = 100

// File is an uploaded file that has not been stored yet.
type File struct {
	// Field is the form field the file arrived in.
	Field string
	// Name is the client-side filename; only its extension is kept.
	Name    string
	Content io.Reader
}

// Storage writes uploads into a single directory.
type Storage struct {
	dir string
	now func() time.Time
}

// NewStorage creates the directory if needed.
func NewStorage(dir string) (*Storage, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating upload directory: %w", err)
	}
	return &Storage{dir: dir, now: time.Now}, nil
}

// Dir returns the directory uploads are written to.
func (s *Storage) Dir() string {
	return s.dir
}

// FileName builds the stored name: field, millisecond timestamp and the
// original extension.
func FileName(field, original string, t time.Time) string {
	ext := filepath.Ext(filepath.Base(original))
	return field + "_" + strconv.FormatInt(t.UnixMilli(), 10) + ext
}

// Save writes f to the directory and returns the stored name. Existing
// files are never overwritten.
func (s *Storage) Save(f *File) (string, error) {
	if f == nil || f.Content == nil {
		return "", errors.New("no file content")
	}
	t := s.now()
	for i := 0; i < maxNameAttempts; i++ {
		name := FileName(f.Field, f.Name, t.Add(time.Duration(i)*time.Millisecond))
		out, err := os.OpenFile(filepath.Join(s.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("creating %s: %w", name, err)
		}
		if _, err := io.Copy(out, f.Content); err != nil {
			out.Close()
			os.Remove(out.Name())
			return "", fmt.Errorf("writing %s: %w", name, err)
		}
		if err := out.Close(); err != nil {
			os.Remove(out.Name())
			return "", fmt.Errorf("closing %s: %w", name, err)
		}
		return name, nil
	}
	return "", fmt.Errorf("no free file name for %q", f.Name)
}

// Open returns a stored file for reading. Names that are not plain file
// names, and directories, report fs.ErrNotExist like missing files.
func (s *Storage) Open(name string) (*os.File, fs.FileInfo, error) {
	if !validName(name) {
		return nil, nil, fs.ErrNotExist
	}
	f, err := os.Open(filepath.Join(s.dir, name))
	if err != nil {
		return nil, nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	if !info.Mode().IsRegular() {
		f.Close()
		return nil, nil, fs.ErrNotExist
	}
	return f, info, nil
}

func validName(name string) bool {
	return name != "" && name != "." && name != ".." && name == filepath.Base(name)
}

// Remove deletes a stored file. Missing files are not an error.
func (s *Storage) Remove(name string) error {
	if !validName(name) {
		return fmt.Errorf("invalid file name %q", name)
	}
	err := os.Remove(filepath.Join(s.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
