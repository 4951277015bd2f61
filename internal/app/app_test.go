package app_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"github.com/jrsteele09/wave-console/apiclient"
	"github.com/jrsteele09/wave-console/internal/app"
	"github.com/jrsteele09/wave-console/internal/config"
	"github.com/jrsteele09/wave-console/session"
	"github.com/jrsteele09/wave-console/tokens"
	"github.com/jrsteele09/wave-console/tokens/filestore"
	"github.com/jrsteele09/wave-console/tokens/memstore"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestOpenTokenStore(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		kind  string
		check func(t *testing.T, s tokens.Store)
	}{
		{config.TokenStoreFile, func(t *testing.T, s tokens.Store) {
			fs, ok := s.(*filestore.Store)
			require.True(t, ok)
			require.Equal(t, filepath.Join(dir, "tokens.json"), fs.Path())
		}},
		{config.TokenStoreMemory, func(t *testing.T, s tokens.Store) {
			_, ok := s.(*memstore.Store)
			require.True(t, ok)
		}},
		{config.TokenStoreNone, func(t *testing.T, s tokens.Store) {
			require.Equal(t, tokens.Unavailable{}, s)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			t.Setenv("TOKEN_STORE", tt.kind)
			t.Setenv("TOKEN_STORE_PATH", filepath.Join(dir, "tokens.json"))

			store, err := app.OpenTokenStore(context.Background(), config.New())
			require.NoError(t, err)
			tt.check(t, store)
			require.NoError(t, app.CloseStore(store))
		})
	}
}

func TestOpenTokenStore_Unknown(t *testing.T) {
	t.Setenv("TOKEN_STORE", "floppy")

	_, err := app.OpenTokenStore(context.Background(), config.New())
	require.ErrorContains(t, err, "floppy")
}

func TestNew(t *testing.T) {
	t.Setenv("TOKEN_STORE", config.TokenStoreMemory)

	a, err := app.New(context.Background(), config.New())
	require.NoError(t, err)
	require.Equal(t, session.Initial, a.Session.State().Phase)
	require.Same(t, a.Store, a.Client.Store())
	require.NoError(t, a.Close())
}

// closingStore records whether it was closed while resolution still ran.
type closingStore struct {
	*memstore.Store
	done        <-chan struct{}
	mu          sync.Mutex
	closed      bool
	closedEarly bool
}

func (s *closingStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	select {
	case <-s.done:
	default:
		s.closedEarly = true
	}
	return nil
}

func TestStartResolve_StopWaitsBeforeClosing(t *testing.T) {
	started := make(chan struct{})
	var once sync.Once
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		once.Do(func() { close(started) })
		<-r.Context().Done()
	}))
	t.Cleanup(srv.Close)

	store := &closingStore{Store: memstore.NewWithPair(tokens.Pair{AccessToken: "a1", RefreshToken: "r1"})}
	client := apiclient.New(srv.URL, store, apiclient.WithLogger(zerolog.Nop()))
	ctrl := session.New(client, store, session.WithLogger(zerolog.Nop()))
	store.done = ctrl.Done()
	a := &app.App{Store: store, Client: client, Session: ctrl}

	stop := a.StartResolve(context.Background(), nil)
	<-started

	require.NoError(t, stop())
	store.mu.Lock()
	defer store.mu.Unlock()
	require.True(t, store.closed)
	require.False(t, store.closedEarly)
	require.Equal(t, session.Anonymous, ctrl.State().Phase)
	require.True(t, tokens.HasAccessToken(context.Background(), store))
}
