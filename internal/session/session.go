// Package session ties a browser to its CSRF token.
//
// A visitor is identified by a random id kept in an HttpOnly cookie. The
// token for that id lives in a Store, which can be process memory, Redis
// or PostgreSQL.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/pkg/errors"
)

// tokenBytes is the amount of randomness in a CSRF token (256 bits).
const tokenBytes = 32

// NewToken returns a fresh 64 character hex token.
func NewToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Wrap(err, "failed to read random bytes")
	}
	return hex.EncodeToString(b), nil
}

// Store persists one token per session id.
type Store interface {
	// Load returns the token for id. found is false when there is none or
	// it expired.
	Load(ctx context.Context, id string) (token string, found bool, err error)
	// Save replaces the token for id.
	Save(ctx context.Context, id, token string, ttl time.Duration) error
}

// Session is one visitor's view of the store.
type Session struct {
	ID    string
	store Store
	ttl   time.Duration
}

func New(id string, store Store, ttl time.Duration) *Session {
	return &Session{ID: id, store: store, ttl: ttl}
}

// GetOrCreateToken returns the session token, creating and saving one on
// first use.
func (s *Session) GetOrCreateToken(ctx context.Context) (string, error) {
	token, found, err := s.store.Load(ctx, s.ID)
	if err != nil {
		return "", errors.Wrap(err, "failed to load session token")
	}
	if found && token != "" {
		return token, nil
	}
	return s.RotateToken(ctx)
}

// RotateToken replaces the session token with a new one and returns it.
func (s *Session) RotateToken(ctx context.Context) (string, error) {
	token, err := NewToken()
	if err != nil {
		return "", err
	}
	if err := s.store.Save(ctx, s.ID, token, s.ttl); err != nil {
		return "", errors.Wrap(err, "failed to save session token")
	}
	return token, nil
}
