// Package app wires the token store, backend client and session controller
// shared by the console server and wavectl.
package app

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/jrsteele09/wave-console/apiclient"
	"github.com/jrsteele09/wave-console/internal/config"
	"github.com/jrsteele09/wave-console/session"
	"github.com/jrsteele09/wave-console/tokens"
	"github.com/jrsteele09/wave-console/tokens/filestore"
	"github.com/jrsteele09/wave-console/tokens/memstore"
	"github.com/jrsteele09/wave-console/tokens/redisstore"
	"github.com/rs/zerolog/log"
)

type App struct {
	Config  config.Config
	Store   tokens.Store
	Client  *apiclient.Client
	Session *session.Controller
}

// New opens the configured token store and builds one session controller.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	store, err := OpenTokenStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	client := apiclient.New(cfg.GetAPIBaseURL(), store,
		apiclient.WithTimeout(cfg.GetAPITimeout()),
		apiclient.WithRotation(cfg.GetTokenRotation()),
	)

	return &App{
		Config:  cfg,
		Store:   store,
		Client:  client,
		Session: session.New(client, store),
	}, nil
}

// Close releases the session and the token store.
func (a *App) Close() error {
	return a.Session.Close()
}

// StartResolve runs Session.Resolve in the background, passing the outcome to
// onDone. The returned stop cancels resolution, waits for it to return and
// only then closes the app.
func (a *App) StartResolve(ctx context.Context, onDone func(session.State)) (stop func() error) {
	ctx, cancel := context.WithCancel(ctx)
	go func() {
		state := a.Session.Resolve(ctx)
		if onDone != nil {
			onDone(state)
		}
	}()
	return func() error {
		cancel()
		<-a.Session.Done()
		return a.Close()
	}
}

// OpenTokenStore returns the backend named by TOKEN_STORE.
func OpenTokenStore(ctx context.Context, cfg config.TokenStoreConfig) (tokens.Store, error) {
	kind := strings.ToLower(strings.TrimSpace(cfg.GetTokenStore()))
	switch kind {
	case config.TokenStoreFile, "":
		var opts []filestore.Option
		if pass := cfg.GetTokenStorePassphrase(); pass != "" {
			opts = append(opts, filestore.WithPassphrase(pass))
		}
		store := filestore.New(cfg.GetTokenStorePath(), opts...)
		log.Info().Str("path", store.Path()).Bool("sealed", len(opts) > 0).Msg("Using file token store")
		return store, nil
	case config.TokenStoreMemory:
		log.Info().Msg("Using in-memory token store")
		return memstore.New(), nil
	case config.TokenStoreRedis:
		store, err := redisstore.Connect(ctx, redisstore.Config{
			Addr:     cfg.GetRedisAddr(),
			Password: cfg.GetRedisPassword(),
			DB:       cfg.GetRedisDB(),
			Prefix:   cfg.GetRedisPrefix(),
		})
		if err != nil {
			return nil, fmt.Errorf("[app OpenTokenStore] redis: %w", err)
		}
		log.Info().Str("addr", cfg.GetRedisAddr()).Msg("Using redis token store")
		return store, nil
	case config.TokenStoreNone:
		log.Warn().Msg("No token store, sessions will not survive a restart")
		return tokens.Unavailable{}, nil
	default:
		return nil, fmt.Errorf("[app OpenTokenStore] unknown token store %q", kind)
	}
}

// CloseStore closes store when it holds resources.
func CloseStore(store tokens.Store) error {
	if c, ok := store.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
