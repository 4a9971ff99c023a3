// Package session persists the signed-in identity across restarts.
package session

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dori/workbridge/internal/db"
	"github.com/dori/workbridge/internal/model"
)

// Durable keys, one opaque token and one serialized user record
const (
	KeyToken = "token"
	KeyUser  = "user"
)

// ErrEmptyToken is returned when saving a session without a credential
var ErrEmptyToken = errors.New("session token is empty")

// Store mirrors the active session into durable storage
type Store struct {
	db *db.DB
}

// NewStore creates a session store backed by the key/value table
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Load restores the session. It returns nil without error when either
// entry is missing.
func (s *Store) Load() (*model.Session, error) {
	token, hasToken, err := s.db.Get(KeyToken)
	if err != nil {
		return nil, fmt.Errorf("failed to read token: %w", err)
	}
	rawUser, hasUser, err := s.db.Get(KeyUser)
	if err != nil {
		return nil, fmt.Errorf("failed to read user: %w", err)
	}
	if !hasToken || !hasUser || token == "" {
		return nil, nil
	}

	var user model.User
	if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
		return nil, fmt.Errorf("stored user is corrupt: %w", err)
	}

	return &model.Session{User: user, Token: token}, nil
}

// Save persists both entries atomically
func (s *Store) Save(sess model.Session) error {
	if sess.Token == "" {
		return ErrEmptyToken
	}

	rawUser, err := json.Marshal(sess.User)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}

	if err := s.db.SetMany(map[string]string{
		KeyToken: sess.Token,
		KeyUser:  string(rawUser),
	}); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Clear removes both entries
func (s *Store) Clear() error {
	if err := s.db.Delete(KeyToken, KeyUser); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// Token returns the stored bearer token, or "" when signed out.
// It is read on every request so a cleared session takes effect at once.
func (s *Store) Token() string {
	token, _, err := s.db.Get(KeyToken)
	if err != nil {
		return ""
	}
	return token
}
