package repositories

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/dgraph-io/badger/v4"
)

// Store owns the badger handle backing the user and post collections.
type Store struct {
	db    *badger.DB
	path  string
	users *BadgerUserRepository
	posts *BadgerPostRepository
}

// Open opens the store at path, creating it if needed. An empty path
// opens an in-memory store.
func Open(path string, logger *slog.Logger) (*Store, error) {
	var opts badger.Options
	if path == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(path, 0755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
		opts = badger.DefaultOptions(path)
	}
	opts = opts.WithLogger(newBadgerLogger(logger)).WithNumVersionsToKeep(1)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening store at %q: %w", path, err)
	}
	return &Store{
		db:    db,
		path:  path,
		users: NewBadgerUserRepository(db),
		posts: NewBadgerPostRepository(db),
	}, nil
}

// Users returns the credential store.
func (s *Store) Users() *BadgerUserRepository {
	return s.users
}

// Posts returns the post store.
func (s *Store) Posts() *BadgerPostRepository {
	return s.posts
}

// Close flushes and closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Backup writes a full snapshot of the store to w and returns the
// version it covers.
func (s *Store) Backup(w io.Writer) (uint64, error) {
	return s.db.Backup(w, 0)
}

// Restore replaces the store contents with a snapshot produced by Backup.
func (s *Store) Restore(r io.Reader) error {
	if err := s.db.DropAll(); err != nil {
		return fmt.Errorf("clearing store: %w", err)
	}
	if err := s.db.Load(r, 16); err != nil {
		return fmt.Errorf("loading backup: %w", err)
	}
	return nil
}

// Clear drops every key. Used by tests and maintenance commands.
func (s *Store) Clear() error {
	return s.db.DropAll()
}

// badgerLogger routes badger's internal logging through slog.
type badgerLogger struct {
	l *slog.Logger
}

func newBadgerLogger(l *slog.Logger) badger.Logger {
	if l == nil {
		return nil
	}
	return &badgerLogger{l: l.With("component", "badger")}
}

func (b *badgerLogger) Errorf(format string, args ...interface{}) {
	b.l.Error(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (b *badgerLogger) Warningf(format string, args ...interface{}) {
	b.l.Warn(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (b *badgerLogger) Infof(format string, args ...interface{}) {
	b.l.Debug(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (b *badgerLogger) Debugf(format string, args ...interface{}) {
	b.l.Debug(strings.TrimSpace(fmt.Sprintf(format, args...)))
}
