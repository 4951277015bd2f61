// Package redisstore keeps the token pair in Redis under the fixed token keys.
package redisstore

import (
	"context"
	"fmt"

	"github.com/jrsteele09/wave-console/internal/errors"
	"github.com/jrsteele09/wave-console/tokens"
	"github.com/redis/go-redis/v9"
)

var _ tokens.Store = (*Store)(nil)

// Config holds the configuration for the Redis client
type Config struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

type Store struct {
	client *redis.Client
	prefix string
}

// New wraps an existing client. prefix is prepended to both keys.
func New(client *redis.Client, prefix string) *Store {
	return &Store{client: client, prefix: prefix}
}

// Connect dials Redis and checks the connection with a PING.
func Connect(ctx context.Context, cfg Config) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("[redisstore Connect] ping %s: %w", cfg.Addr, err)
	}
	return New(client, cfg.Prefix), nil
}

func (s *Store) key(k string) string {
	return s.prefix + k
}

func (s *Store) Read(ctx context.Context, kind tokens.Kind) (string, error) {
	if kind.Key() == "" {
		return "", errors.ErrInvalidKind
	}
	v, err := s.client.Get(ctx, s.key(kind.Key())).Result()
	if err == redis.Nil {
		return "", errors.ErrTokenNotFound
	}
	if err != nil {
		return "", fmt.Errorf("[redisstore Read] %w", err)
	}
	if v == "" {
		return "", errors.ErrTokenNotFound
	}
	return v, nil
}

func (s *Store) Write(ctx context.Context, p tokens.Pair) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		s.set(ctx, pipe, tokens.AccessKey, p.AccessToken)
		s.set(ctx, pipe, tokens.RefreshKey, p.RefreshToken)
		return nil
	})
	if err != nil {
		return fmt.Errorf("[redisstore Write] %w", err)
	}
	return nil
}

// set queues a SET of v, or a DEL when v is empty.
func (s *Store) set(ctx context.Context, pipe redis.Pipeliner, key, v string) {
	if v == "" {
		pipe.Del(ctx, s.key(key))
		return
	}
	pipe.Set(ctx, s.key(key), v, 0)
}

func (s *Store) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key(tokens.AccessKey), s.key(tokens.RefreshKey)).Err(); err != nil {
		return fmt.Errorf("[redisstore Clear] %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.client.Close()
}
