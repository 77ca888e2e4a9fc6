// Package localstore is the client's only persistence layer: a small
// key-value store handed to each component instead of being reached for
// ambiently. Writes are last-write-wins; concurrent processes do not merge.
package localstore

import (
	"encoding/json"

	bolt "go.etcd.io/bbolt"
)

const (
	KeyProducts = "bookstore_products_v1"
	KeyUsers    = "bookstore_users_v1"
	KeySession  = "loggedInUser"
	KeyLastBook = "book_view_id"
)

// CartKey returns the per-user cart slot.
func CartKey(email string) string {
	return "cart_" + email
}

var bucketName = []byte("bookstore")

type Store struct {
	db *bolt.DB
}

func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the stored value, or nil if the key is absent.
func (s *Store) Get(key string) ([]byte, error) {
	var value []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketName).Get([]byte(key))
		if v != nil {
			value = append([]byte(nil), v...)
		}
		return nil
	})
	return value, err
}

func (s *Store) Put(key string, value []byte) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Put([]byte(key), value)
	})
}

func (s *Store) Delete(key string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Delete([]byte(key))
	})
}

// GetJSON decodes the stored value into v. The boolean reports whether the
// key was present.
func (s *Store) GetJSON(key string, v any) (bool, error) {
	data, err := s.Get(key)
	if err != nil {
		return false, err
	}
	if data == nil {
		return false, nil
	}
	return true, json.Unmarshal(data, v)
}

func (s *Store) PutJSON(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.Put(key, data)
}
