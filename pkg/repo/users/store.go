// Package users persists portal accounts in a bbolt bucket keyed by
// username. Passwords are stored as bcrypt hashes, never in the clear.
package users

import (
	"errors"
	"fmt"
	"time"

	"go.etcd.io/bbolt"
	"golang.org/x/crypto/bcrypt"
)

const bucketName = "users"

// ErrExists is returned when registering a username that is already taken.
var ErrExists = errors.New("users: username already exists")

// ErrNotFound is returned when authenticating an unknown username.
var ErrNotFound = errors.New("users: no such user")

// Store is a bbolt-backed account store.
type Store struct {
	db *bbolt.DB
}

// Open opens (or creates) the account database at path and ensures the users
// bucket exists.
func Open(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("users: open %s: %w", path, err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("users: create bucket: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Register creates an account. The username must be unused and both fields
// non-empty.
func (s *Store) Register(username, password string) error {
	if username == "" || password == "" {
		return errors.New("users: username and password must not be empty")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("users: hash password: %w", err)
	}

	err = s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))

		if b.Get([]byte(username)) != nil {
			return ErrExists
		}

		return b.Put([]byte(username), hash)
	})
	if err != nil {
		if errors.Is(err, ErrExists) {
			return err
		}

		return fmt.Errorf("users: register %s: %w", username, err)
	}

	return nil
}

// Authenticate verifies a username/password pair. It returns ErrNotFound for
// unknown users and bcrypt's mismatch error for a wrong password.
func (s *Store) Authenticate(username, password string) error {
	var hash []byte

	err := s.db.View(func(tx *bbolt.Tx) error {
		stored := tx.Bucket([]byte(bucketName)).Get([]byte(username))
		if stored == nil {
			return ErrNotFound
		}

		hash = make([]byte, len(stored))
		copy(hash, stored)

		return nil
	})
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		return fmt.Errorf("users: authenticate %s: %w", username, err)
	}

	return nil
}
