// Package filestore persists the token pair as a small JSON document on disk.
//
// The document maps the fixed token keys to their values. Writes go to a
// temporary file in the same directory which is then renamed over the
// target, so a crash never leaves a half-written file. When a passphrase is
// configured the document is sealed with internal/cryptox.
package filestore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/goccy/go-json"
	"github.com/jrsteele09/wave-console/internal/cryptox"
	"github.com/jrsteele09/wave-console/internal/errors"
	"github.com/jrsteele09/wave-console/tokens"
)

var _ tokens.Store = (*Store)(nil)

type Store struct {
	path       string
	passphrase []byte
	mu         sync.Mutex
}

type Option func(*Store)

// WithPassphrase seals the file contents. An empty passphrase leaves them plain.
func WithPassphrase(passphrase string) Option {
	return func(s *Store) {
		if passphrase != "" {
			s.passphrase = []byte(passphrase)
		}
	}
}

func New(path string, opts ...Option) *Store {
	s := &Store{path: path}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Path() string {
	return s.path
}

func (s *Store) Read(_ context.Context, kind tokens.Kind) (string, error) {
	key := kind.Key()
	if key == "" {
		return "", errors.ErrInvalidKind
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return "", err
	}
	v, ok := values[key]
	if !ok || v == "" {
		return "", errors.ErrTokenNotFound
	}
	return v, nil
}

func (s *Store) Write(_ context.Context, p tokens.Pair) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.save(map[string]string{
		tokens.AccessKey:  p.AccessToken,
		tokens.RefreshKey: p.RefreshToken,
	})
}

func (s *Store) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("[filestore Clear] %w", err)
	}
	return nil
}

func (s *Store) load() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("[filestore load] %w", err)
	}

	if s.passphrase != nil {
		data, err = cryptox.Open(data, s.passphrase)
		if err != nil {
			return nil, fmt.Errorf("[filestore load] %w", err)
		}
	}

	values := map[string]string{}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("[filestore load] decode %s: %w", s.path, err)
	}
	return values, nil
}

func (s *Store) save(values map[string]string) error {
	data, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("[filestore save] encode: %w", err)
	}
	if s.passphrase != nil {
		data, err = cryptox.Seal(data, s.passphrase)
		if err != nil {
			return fmt.Errorf("[filestore save] %w", err)
		}
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("[filestore save] %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".tokens-*")
	if err != nil {
		return fmt.Errorf("[filestore save] %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("[filestore save] write: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("[filestore save] chmod: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("[filestore save] close: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("[filestore save] rename: %w", err)
	}
	return nil
}
