package services

import (
	"errors"
	"log/slog"

	"inkwell/app/apperr"
	"inkwell/app/models"
	"inkwell/app/repositories"
)

// AdminService lists every user and post and removes users together
// with their posts.
type AdminService struct {
	userRepo repositories.UserRepository
	postRepo repositories.PostRepository
	logger   *slog.Logger
}

// NewAdminService creates a new AdminService
func NewAdminService(userRepo repositories.UserRepository, postRepo repositories.PostRepository, logger *slog.Logger) *AdminService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AdminService{userRepo: userRepo, postRepo: postRepo, logger: logger}
}

// ListUsers returns every user, newest first
func (s *AdminService) ListUsers() ([]*models.User, error) {
	users, err := s.userRepo.List()
	if err != nil {
		return nil, apperr.Wrap(apperr.Store, "failed to list users", err)
	}
	models.SortUsersNewestFirst(users)
	return users, nil
}

// ListPosts returns every post, newest first
func (s *AdminService) ListPosts() ([]*models.Post, error) {
	posts, err := s.postRepo.List()
	if err != nil {
		return nil, apperr.Wrap(apperr.Store, "failed to list posts", err)
	}
	models.SortNewestFirst(posts)
	return posts, nil
}

// DeleteUser removes a user and every post carrying the user's email,
// returning the number of posts removed.
//
// The two deletes are not atomic. Posts are deleted first, so a failure
// in between leaves the user with fewer posts and never leaves posts
// without an owner.
func (s *AdminService) DeleteUser(id string) (int, error) {
	user, err := s.userRepo.GetByID(id)
	if errors.Is(err, repositories.ErrNotFound) {
		return 0, apperr.Wrap(apperr.NotFound, "user not found", err)
	}
	if err != nil {
		return 0, apperr.Wrap(apperr.Store, "failed to load user", err)
	}

	removed, err := s.postRepo.DeleteByEmail(user.Email)
	if err != nil {
		return 0, apperr.Wrap(apperr.Store, "failed to delete user posts", err)
	}

	if err := s.userRepo.Delete(id); err != nil && !errors.Is(err, repositories.ErrNotFound) {
		s.logger.Error("user posts deleted but user remains", "user_id", id, "posts", removed, "error", err)
		return removed, apperr.Wrap(apperr.Store, "failed to delete user", err)
	}
	s.logger.Info("user deleted", "user_id", id, "posts", removed)
	return removed, nil
}
