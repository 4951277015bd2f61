package session_test

import (
	"context"
	"sync"
	"testing"

	"github.com/jrsteele09/wave-console/apiclient"
	"github.com/jrsteele09/wave-console/internal/errors"
	"github.com/jrsteele09/wave-console/session"
	"github.com/jrsteele09/wave-console/tokens"
	"github.com/jrsteele09/wave-console/tokens/memstore"
	"github.com/jrsteele09/wave-console/users"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// fakeAuth mimics the backend client against a token store. Tokens listed in
// valid are accepted by CurrentUser; refresh succeeds when refreshOK is set.
type fakeAuth struct {
	mu        sync.Mutex
	store     tokens.Store
	user      users.User
	valid     map[string]bool
	refreshOK bool
	loginErr  error
	regErr    error
	logoutErr error
	calls     map[string]int
}

func newFakeAuth(store tokens.Store) *fakeAuth {
	return &fakeAuth{
		store: store,
		user:  users.User{ID: 42, Email: "a@b.co"},
		valid: map[string]bool{},
		calls: map[string]int{},
	}
}

func (f *fakeAuth) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeAuth) hit(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[name]++
}

func (f *fakeAuth) Register(_ context.Context, creds users.Credentials) (*apiclient.RegisterResponse, error) {
	f.hit("register")
	if f.regErr != nil {
		return nil, f.regErr
	}
	return &apiclient.RegisterResponse{Message: "created", User: users.User{ID: f.user.ID, Email: creds.Email}}, nil
}

func (f *fakeAuth) Login(ctx context.Context, creds users.Credentials) (*apiclient.LoginResponse, error) {
	f.hit("login")
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	f.mu.Lock()
	f.valid["login-access"] = true
	f.mu.Unlock()
	if err := f.store.Write(ctx, tokens.Pair{AccessToken: "login-access", RefreshToken: "login-refresh"}); err != nil {
		return nil, err
	}
	return &apiclient.LoginResponse{AccessToken: "login-access", RefreshToken: "login-refresh", User: users.User{ID: f.user.ID, Email: creds.Email}}, nil
}

func (f *fakeAuth) CurrentUser(ctx context.Context) (*users.User, error) {
	f.hit("me")
	access, err := f.store.Read(ctx, tokens.Access)
	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil || !f.valid[access] {
		return nil, &apiclient.APIError{Message: "Token has expired", Status: 401}
	}
	u := f.user
	return &u, nil
}

func (f *fakeAuth) RefreshAccessToken(ctx context.Context) (string, error) {
	f.hit("refresh")
	refresh, err := f.store.Read(ctx, tokens.Refresh)
	if err != nil {
		return "", &apiclient.APIError{Message: "No refresh token available", Status: 401}
	}
	f.mu.Lock()
	ok := f.refreshOK
	if ok {
		f.valid["fresh-access"] = true
	}
	f.mu.Unlock()
	if !ok {
		return "", &apiclient.APIError{Message: "Token has been revoked", Status: 401}
	}
	return "fresh-access", f.store.Write(ctx, tokens.Pair{AccessToken: "fresh-access", RefreshToken: refresh})
}

func (f *fakeAuth) Logout(ctx context.Context) error {
	f.hit("logout")
	_ = f.store.Clear(ctx)
	return f.logoutErr
}

func newController(auth session.Authenticator, store tokens.Store, opts ...session.Option) *session.Controller {
	opts = append([]session.Option{session.WithLogger(zerolog.Nop())}, opts...)
	return session.New(auth, store, opts...)
}

func TestInitialStateIsLoading(t *testing.T) {
	store := memstore.New()
	ctrl := newController(newFakeAuth(store), store)

	state := ctrl.State()
	require.True(t, state.IsLoading)
	require.Nil(t, state.User)
	require.Equal(t, session.Initial, state.Phase)
}

func TestResolve_NoAccessToken(t *testing.T) {
	store := memstore.New()
	auth := newFakeAuth(store)
	ctrl := newController(auth, store)

	state := ctrl.Resolve(context.Background())
	require.False(t, state.IsLoading)
	require.Nil(t, state.User)
	require.Equal(t, session.Anonymous, state.Phase)
	require.Zero(t, auth.count("me"))
}

func TestResolve_ValidAccessToken(t *testing.T) {
	store := memstore.NewWithPair(tokens.Pair{AccessToken: "good", RefreshToken: "r"})
	auth := newFakeAuth(store)
	auth.valid["good"] = true
	ctrl := newController(auth, store)

	state := ctrl.Resolve(context.Background())
	require.Equal(t, session.Authenticated, state.Phase)
	require.Equal(t, int64(42), state.User.ID)
	require.Equal(t, 1, auth.count("me"))
	require.Zero(t, auth.count("refresh"))
}

func TestResolve_RejectedThenRefreshed(t *testing.T) {
	store := memstore.NewWithPair(tokens.Pair{AccessToken: "expired", RefreshToken: "r"})
	auth := newFakeAuth(store)
	auth.refreshOK = true

	var seen []session.Trigger
	ctrl := newController(auth, store, session.WithObserver(func(t session.Transition) {
		seen = append(seen, t.Trigger)
	}))

	state := ctrl.Resolve(context.Background())
	require.Equal(t, session.Authenticated, state.Phase)
	require.Equal(t, int64(42), state.User.ID)
	require.Equal(t, 1, auth.count("refresh"))
	require.Equal(t, 2, auth.count("me"))
	require.Equal(t, []session.Trigger{
		session.ResolveStarted,
		session.IdentityRejected,
		session.RefreshSucceeded,
		session.RetryResolved,
	}, seen)

	refresh, err := store.Read(context.Background(), tokens.Refresh)
	require.NoError(t, err)
	require.Equal(t, "r", refresh)
}

func TestResolve_RejectedWithoutRefreshToken(t *testing.T) {
	store := memstore.NewWithPair(tokens.Pair{AccessToken: "expired"})
	auth := newFakeAuth(store)
	ctrl := newController(auth, store)

	state := ctrl.Resolve(context.Background())
	require.False(t, state.IsLoading)
	require.Nil(t, state.User)
	require.Equal(t, session.Anonymous, state.Phase)
	require.False(t, tokens.HasAccessToken(context.Background(), store))
}

func TestResolve_RefreshFailsClearsTokens(t *testing.T) {
	store := memstore.NewWithPair(tokens.Pair{AccessToken: "expired", RefreshToken: "revoked"})
	auth := newFakeAuth(store)
	ctrl := newController(auth, store)

	state := ctrl.Resolve(context.Background())
	require.Equal(t, session.Anonymous, state.Phase)
	require.Equal(t, 1, auth.count("refresh"))
	require.Equal(t, 1, auth.count("me"))
	_, err := store.Read(context.Background(), tokens.Refresh)
	require.ErrorIs(t, err, errors.ErrTokenNotFound)
}

func TestResolve_RetryRejectedStopsAfterOneRetry(t *testing.T) {
	store := memstore.NewWithPair(tokens.Pair{AccessToken: "expired", RefreshToken: "r"})
	auth := newFakeAuth(store)
	auth.refreshOK = true
	ctrl := newController(&rejectingAuth{fakeAuth: auth}, store)

	state := ctrl.Resolve(context.Background())
	require.Equal(t, session.Anonymous, state.Phase)
	require.Equal(t, 1, auth.count("refresh"))
	require.Equal(t, 2, auth.count("me"))
	require.False(t, tokens.HasAccessToken(context.Background(), store))
}

// rejectingAuth refuses every identity request.
type rejectingAuth struct {
	*fakeAuth
}

func (r *rejectingAuth) CurrentUser(context.Context) (*users.User, error) {
	r.hit("me")
	return nil, &apiclient.APIError{Message: "Token has expired", Status: 401}
}

func TestResolve_RunsOnce(t *testing.T) {
	store := memstore.NewWithPair(tokens.Pair{AccessToken: "good"})
	auth := newFakeAuth(store)
	auth.valid["good"] = true
	ctrl := newController(auth, store)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ctrl.Resolve(context.Background())
		}()
	}
	wg.Wait()

	<-ctrl.Done()
	require.Equal(t, 1, auth.count("me"))
	require.True(t, ctrl.IsAuthenticated())
}

func TestResolve_CancelledKeepsTokens(t *testing.T) {
	store := memstore.NewWithPair(tokens.Pair{AccessToken: "expired", RefreshToken: "r"})
	auth := newFakeAuth(store)
	ctrl := newController(auth, store)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	state := ctrl.Resolve(ctx)
	require.Equal(t, session.Anonymous, state.Phase)
	require.True(t, tokens.HasAccessToken(context.Background(), store))
}

func TestLogin(t *testing.T) {
	store := memstore.New()
	auth := newFakeAuth(store)
	ctrl := newController(auth, store)
	ctrl.Resolve(context.Background())

	path, err := ctrl.Login(context.Background(), users.Credentials{Email: "a@b.co", Password: "pw"})
	require.NoError(t, err)
	require.Equal(t, "/42/dashboard", path)

	user, ok := ctrl.User()
	require.True(t, ok)
	require.Equal(t, "a@b.co", user.Email)
	require.True(t, tokens.HasAccessToken(context.Background(), store))
}

func TestLogin_FailureLeavesState(t *testing.T) {
	store := memstore.New()
	auth := newFakeAuth(store)
	auth.loginErr = &apiclient.APIError{Message: "Invalid credentials", Status: 401}
	ctrl := newController(auth, store)
	ctrl.Resolve(context.Background())

	path, err := ctrl.Login(context.Background(), users.Credentials{Email: "a@b.co", Password: "bad"})
	require.Empty(t, path)
	require.Equal(t, auth.loginErr, err)
	require.False(t, ctrl.IsAuthenticated())
	require.Equal(t, session.Anonymous, ctrl.State().Phase)
}

func TestRegister_LogsIn(t *testing.T) {
	store := memstore.New()
	auth := newFakeAuth(store)
	ctrl := newController(auth, store)

	path, err := ctrl.Register(context.Background(), users.Credentials{Email: "new@b.co", Password: "Passw0rd"})
	require.NoError(t, err)
	require.Equal(t, "/42/dashboard", path)
	require.Equal(t, 1, auth.count("register"))
	require.Equal(t, 1, auth.count("login"))
}

func TestRegister_FailureSkipsLogin(t *testing.T) {
	store := memstore.New()
	auth := newFakeAuth(store)
	auth.regErr = &apiclient.APIError{Message: "Email already registered", Status: 409}
	ctrl := newController(auth, store)

	_, err := ctrl.Register(context.Background(), users.Credentials{Email: "a@b.co", Password: "Passw0rd"})
	apiErr, ok := apiclient.AsAPIError(err)
	require.True(t, ok)
	require.Equal(t, "Email already registered", apiErr.Message)
	require.Zero(t, auth.count("login"))
}

func TestLogout_ErrorSwallowed(t *testing.T) {
	store := memstore.New()
	auth := newFakeAuth(store)
	auth.logoutErr = &apiclient.APIError{Message: "boom", Status: 500}
	ctrl := newController(auth, store)

	_, err := ctrl.Login(context.Background(), users.Credentials{Email: "a@b.co", Password: "pw"})
	require.NoError(t, err)

	path := ctrl.Logout(context.Background())
	require.Equal(t, "/login", path)
	require.False(t, ctrl.IsAuthenticated())
	require.False(t, tokens.HasAccessToken(context.Background(), store))
}

func TestClose(t *testing.T) {
	store := memstore.New()
	auth := newFakeAuth(store)
	ctrl := newController(auth, store)

	_, err := ctrl.Login(context.Background(), users.Credentials{Email: "a@b.co", Password: "pw"})
	require.NoError(t, err)
	require.NoError(t, ctrl.Close())
	require.False(t, ctrl.IsAuthenticated())

	_, err = ctrl.Login(context.Background(), users.Credentials{Email: "a@b.co", Password: "pw"})
	require.ErrorIs(t, err, errors.ErrSessionClosed)
}
