// Package memstore keeps the token pair in process memory.
package memstore

import (
	"context"
	"sync"

	"github.com/jrsteele09/wave-console/internal/errors"
	"github.com/jrsteele09/wave-console/tokens"
)

var _ tokens.Store = (*Store)(nil)

type Store struct {
	values map[string]string
	lock   sync.RWMutex
}

func New() *Store {
	return &Store{values: make(map[string]string)}
}

// NewWithPair returns a store already holding p. Empty tokens are not stored.
func NewWithPair(p tokens.Pair) *Store {
	s := New()
	if p.AccessToken != "" {
		s.values[tokens.AccessKey] = p.AccessToken
	}
	if p.RefreshToken != "" {
		s.values[tokens.RefreshKey] = p.RefreshToken
	}
	return s
}

func (s *Store) Read(_ context.Context, kind tokens.Kind) (string, error) {
	key := kind.Key()
	if key == "" {
		return "", errors.ErrInvalidKind
	}

	s.lock.RLock()
	defer s.lock.RUnlock()
	v, ok := s.values[key]
	if !ok || v == "" {
		return "", errors.ErrTokenNotFound
	}
	return v, nil
}

func (s *Store) Write(_ context.Context, p tokens.Pair) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.set(tokens.AccessKey, p.AccessToken)
	s.set(tokens.RefreshKey, p.RefreshToken)
	return nil
}

// set stores v under key. An empty v removes the key.
func (s *Store) set(key, v string) {
	if v == "" {
		delete(s.values, key)
		return
	}
	s.values[key] = v
}

func (s *Store) Clear(_ context.Context) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	delete(s.values, tokens.AccessKey)
	delete(s.values, tokens.RefreshKey)
	return nil
}
