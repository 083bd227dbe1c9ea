package repositories

import (
	"testing"
	"time"

	"inkwell/app/models"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T) *Store {
	store, err := Open("", nil)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestMarshalEntity(t *testing.T) {
	t.Run("marshal post", func(t *testing.T) {
		post := &models.Post{
			ID:          "post-1",
			Title:       "Test Post",
			Description: "Test Content",
			CreatedAt:   time.Now().UTC(),
		}

		data, err := marshalEntity(post)
		assert.NoError(t, err)
		assert.NotEmpty(t, data)

		var unmarshaled models.Post
		err = unmarshalEntity(data, &unmarshaled)
		assert.NoError(t, err)
		assert.Equal(t, post.ID, unmarshaled.ID)
		assert.Equal(t, post.Title, unmarshaled.Title)
		assert.True(t, post.CreatedAt.Equal(unmarshaled.CreatedAt))
	})

	t.Run("marshal invalid entity", func(t *testing.T) {
		invalidEntity := struct {
			Ch chan int
		}{
			Ch: make(chan int),
		}

		_, err := marshalEntity(invalidEntity)
		assert.Error(t, err)
	})
}

func TestUnmarshalEntity(t *testing.T) {
	t.Run("unmarshal post", func(t *testing.T) {
		data := []byte(`{"id":"p1","title":"Test Post","description":"Test Content","file":"a.png"}`)
		var post models.Post
		err := unmarshalEntity(data, &post)
		assert.NoError(t, err)
		assert.Equal(t, "p1", post.ID)
		assert.Equal(t, "Test Post", post.Title)
		assert.Equal(t, "a.png", post.File)
	})

	t.Run("unmarshal invalid JSON", func(t *testing.T) {
		data := []byte(`{"id":1,invalid json}`)
		var post models.Post
		err := unmarshalEntity(data, &post)
		assert.Error(t, err)
	})

	t.Run("unmarshal into nil", func(t *testing.T) {
		err := unmarshalEntity([]byte(`{"id":"p1"}`), nil)
		assert.Error(t, err)
	})
}

func TestScanPrefix(t *testing.T) {
	store := setupTestStore(t)

	require.NoError(t, store.db.Update(func(txn *badger.Txn) error {
		for _, k := range []string{"user:1", "user:2", "user-email:a@b.c", "post:1"} {
			if err := txn.Set([]byte(k), []byte(`{}`)); err != nil {
				return err
			}
		}
		return nil
	}))

	var keys []string
	err := store.db.View(func(txn *badger.Txn) error {
		return scanPrefix(txn, UserKeyPrefix, func(key, _ []byte) error {
			keys = append(keys, string(key))
			return nil
		})
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"user:1", "user:2"}, keys)
}
