package services

import (
	"errors"
	"log/slog"
	"time"

	"inkwell/app/apperr"
	"inkwell/app/models"
	"inkwell/app/repositories"
	"inkwell/app/uploads"
)

// FileStore persists uploaded files and returns their stored names.
type FileStore interface {
	Save(f *uploads.File) (string, error)
	Remove(name string) error
}

// PostService handles business logic for blog posts
type PostService struct {
	postRepo repositories.PostRepository
	files    FileStore
	logger   *slog.Logger
	now      func() time.Time
}

// NewPostService creates a new PostService
func NewPostService(postRepo repositories.PostRepository, files FileStore, logger *slog.Logger) *PostService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostService{
		postRepo: postRepo,
		files:    files,
		logger:   logger,
		now:      time.Now,
	}
}

// CreatePost stores a post authored by id with an attached file. The
// file is written first; if the post cannot be stored the file is
// removed again.
func (s *PostService) CreatePost(id *models.Identity, title, description string, file *uploads.File) (*models.Post, error) {
	if id == nil {
		return nil, apperr.New(apperr.Unauthenticated, "authentication required")
	}

	post := &models.Post{Title: title, Description: description}
	post.SetAuthor(id)
	if err := post.Validate("File"); err != nil {
		return nil, err
	}
	if file == nil {
		return nil, apperr.New(apperr.Validation, "file is required")
	}

	name, err := s.files.Save(file)
	if err != nil {
		return nil, apperr.Wrap(apperr.Store, "failed to store file", err)
	}
	post.File = name
	post.BeforeCreate(s.now())

	if err := s.postRepo.Create(post); err != nil {
		s.discardFile(name)
		return nil, apperr.Wrap(apperr.Store, "failed to create post", err)
	}
	return post, nil
}

// ListPosts returns every post, newest first
func (s *PostService) ListPosts() ([]*models.Post, error) {
	posts, err := s.postRepo.List()
	if err != nil {
		return nil, apperr.Wrap(apperr.Store, "failed to list posts", err)
	}
	models.SortNewestFirst(posts)
	return posts, nil
}

// GetPost retrieves a post by ID
func (s *PostService) GetPost(id string) (*models.Post, error) {
	post, err := s.postRepo.GetByID(id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, apperr.Wrap(apperr.NotFound, "post not found", err)
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.Store, "failed to load post", err)
	}
	return post, nil
}

// EditPost applies a partial update to a post owned by id. The file
// reference changes only when a new file is supplied; creation time and
// author snapshot are preserved.
func (s *PostService) EditPost(id *models.Identity, postID string, edit models.PostEdit, file *uploads.File) (*models.Post, error) {
	post, err := s.ownedPost(id, postID)
	if err != nil {
		return nil, err
	}

	edit.File = ""
	if file != nil {
		name, err := s.files.Save(file)
		if err != nil {
			return nil, apperr.Wrap(apperr.Store, "failed to store file", err)
		}
		edit.File = name
	}
	post.Apply(edit)

	if err := s.postRepo.Update(post); err != nil {
		s.discardFile(edit.File)
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperr.Wrap(apperr.NotFound, "post not found", err)
		}
		return nil, apperr.Wrap(apperr.Store, "failed to update post", err)
	}
	return post, nil
}

// ListMyPosts returns the posts authored by id, newest first
func (s *PostService) ListMyPosts(id *models.Identity) ([]*models.Post, error) {
	if id == nil {
		return nil, apperr.New(apperr.Unauthenticated, "authentication required")
	}
	posts, err := s.postRepo.ListByEmail(id.Email)
	if err != nil {
		return nil, apperr.Wrap(apperr.Store, "failed to list posts", err)
	}
	models.SortNewestFirst(posts)
	return posts, nil
}

// DeletePost deletes a post owned by id
func (s *PostService) DeletePost(id *models.Identity, postID string) error {
	if _, err := s.ownedPost(id, postID); err != nil {
		return err
	}
	err := s.postRepo.Delete(postID)
	if errors.Is(err, repositories.ErrNotFound) {
		return apperr.Wrap(apperr.NotFound, "post not found", err)
	}
	if err != nil {
		return apperr.Wrap(apperr.Store, "failed to delete post", err)
	}
	return nil
}

func (s *PostService) ownedPost(id *models.Identity, postID string) (*models.Post, error) {
	if id == nil {
		return nil, apperr.New(apperr.Unauthenticated, "authentication required")
	}
	post, err := s.GetPost(postID)
	if err != nil {
		return nil, err
	}
	if !post.OwnedBy(id) {
		return nil, apperr.New(apperr.Forbidden, "only the author may change this post")
	}
	return post, nil
}

func (s *PostService) discardFile(name string) {
	if name == "" {
		return
	}
	if err := s.files.Remove(name); err != nil {
		s.logger.Warn("failed to remove orphaned upload", "file", name, "error", err)
	}
}
