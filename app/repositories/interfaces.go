package repositories

import "inkwell/app/models"

// UserRepository defines the interface for user data access
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	List() ([]*models.User, error)
	Delete(id string) error
}

// PostRepository defines the interface for post data access
type PostRepository interface {
	Create(post *models.Post) error
	GetByID(id string) (*models.Post, error)
	List() ([]*models.Post, error)
	ListByEmail(email string) ([]*models.Post, error)
	Update(post *models.Post) error
	Delete(id string) error
	DeleteByEmail(email string) (int, error)
}
