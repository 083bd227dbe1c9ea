package repositories

import (
	"errors"
	"fmt"

	"inkwell/app/models"

	"github.com/dgraph-io/badger/v4"
)

// storedUser is the persisted form of a user. models.User hides the
// password hash from JSON, so the hash is stored alongside it.
type storedUser struct {
	models.User
	PasswordHash string `json:"passwordHash"`
}

func (s *storedUser) user() *models.User {
	u := s.User
	u.Password = s.PasswordHash
	return &u
}

// BadgerUserRepository implements UserRepository using BadgerDB
type BadgerUserRepository struct {
	db *badger.DB
}

// NewBadgerUserRepository creates a new BadgerUserRepository
func NewBadgerUserRepository(db *badger.DB) *BadgerUserRepository {
	return &BadgerUserRepository{db: db}
}

// Create stores a new user. The email index makes a second user with
// the same email fail with ErrDuplicate.
func (r *BadgerUserRepository) Create(user *models.User) error {
	return r.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(userEmailKey(user.Email))
		if err == nil {
			return ErrDuplicate
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}

		data, err := marshalEntity(storedUser{User: *user, PasswordHash: user.Password})
		if err != nil {
			return err
		}
		if err := txn.Set(userKey(user.ID), data); err != nil {
			return err
		}
		return txn.Set(userEmailKey(user.Email), []byte(user.ID))
	})
}

// GetByID retrieves a user by ID
func (r *BadgerUserRepository) GetByID(id string) (*models.User, error) {
	var stored storedUser
	err := r.db.View(func(txn *badger.Txn) error {
		return getEntity(txn, userKey(id), &stored)
	})
	if err != nil {
		return nil, err
	}
	return stored.user(), nil
}

// GetByEmail retrieves a user through the email index
func (r *BadgerUserRepository) GetByEmail(email string) (*models.User, error) {
	var stored storedUser
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(userEmailKey(email))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		id, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		return getEntity(txn, userKey(string(id)), &stored)
	})
	if err != nil {
		return nil, err
	}
	return stored.user(), nil
}

// List retrieves every user in key order
func (r *BadgerUserRepository) List() ([]*models.User, error) {
	users := []*models.User{}
	err := r.db.View(func(txn *badger.Txn) error {
		return scanPrefix(txn, UserKeyPrefix, func(_, val []byte) error {
			var stored storedUser
			if err := unmarshalEntity(val, &stored); err != nil {
				return fmt.Errorf("failed to unmarshal user: %w", err)
			}
			users = append(users, stored.user())
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return users, nil
}

// Delete removes a user and its email index entry
func (r *BadgerUserRepository) Delete(id string) error {
	return r.db.Update(func(txn *badger.Txn) error {
		var stored storedUser
		if err := getEntity(txn, userKey(id), &stored); err != nil {
			return err
		}
		if err := txn.Delete(userKey(id)); err != nil {
			return err
		}
		return txn.Delete(userEmailKey(stored.Email))
	})
}
