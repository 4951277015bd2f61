// Package session owns the process-wide signed-in identity. It runs the
// startup check of persisted tokens once and performs login, registration
// and logout on behalf of the pages.
package session

import (
	"context"
	"io"
	"sync"

	"github.com/jrsteele09/wave-console/apiclient"
	"github.com/jrsteele09/wave-console/internal/errors"
	"github.com/jrsteele09/wave-console/tokens"
	"github.com/jrsteele09/wave-console/users"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const LoginPath = "/login"

// DashboardPath is where a signed-in user lands.
func DashboardPath(u users.User) string {
	return "/" + u.IDString() + "/dashboard"
}

// Authenticator is the subset of the backend client the controller drives.
type Authenticator interface {
	Register(ctx context.Context, creds users.Credentials) (*apiclient.RegisterResponse, error)
	Login(ctx context.Context, creds users.Credentials) (*apiclient.LoginResponse, error)
	CurrentUser(ctx context.Context) (*users.User, error)
	RefreshAccessToken(ctx context.Context) (string, error)
	Logout(ctx context.Context) error
}

// State is a snapshot of the session.
type State struct {
	User      *users.User `json:"user"`
	IsLoading bool        `json:"is_loading"`
	Phase     Phase       `json:"-"`
}

func (s State) IsAuthenticated() bool {
	return s.User != nil
}

// Controller holds the identity. Create one per process and share it.
type Controller struct {
	client    Authenticator
	store     tokens.Store
	logger    zerolog.Logger
	observers []func(Transition)

	mu     sync.RWMutex
	phase  Phase
	step   step
	user   *users.User
	closed bool

	once sync.Once
	done chan struct{}
}

type Option func(*Controller)

func WithLogger(l zerolog.Logger) Option {
	return func(c *Controller) {
		c.logger = l
	}
}

// WithObserver registers fn to be called after each transition.
func WithObserver(fn func(Transition)) Option {
	return func(c *Controller) {
		c.observers = append(c.observers, fn)
	}
}

func New(client Authenticator, store tokens.Store, opts ...Option) *Controller {
	if store == nil {
		store = tokens.Unavailable{}
	}
	c := &Controller{
		client: client,
		store:  store,
		logger: log.Logger,
		phase:  Initial,
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Resolve checks the persisted tokens against the backend. It runs once per
// controller; later calls wait for the first and return its outcome.
// Failures end in Anonymous and are only logged.
func (c *Controller) Resolve(ctx context.Context) State {
	c.once.Do(func() {
		defer close(c.done)
		c.resolve(ctx)
	})
	return c.State()
}

func (c *Controller) resolve(ctx context.Context) {
	if !c.fire(ResolveStarted, nil) {
		return
	}

	if !tokens.HasAccessToken(ctx, c.store) {
		c.fire(NoAccessToken, nil)
		return
	}

	user, err := c.client.CurrentUser(ctx)
	if err == nil {
		c.fire(IdentityResolved, user)
		return
	}
	c.logger.Debug().Err(err).Msg("Stored access token rejected")
	if !c.fire(IdentityRejected, nil) {
		return
	}

	if _, err := c.client.RefreshAccessToken(ctx); err != nil {
		c.logger.Debug().Err(err).Msg("Token refresh failed")
		c.reject(ctx, RefreshFailed)
		return
	}
	if !c.fire(RefreshSucceeded, nil) {
		return
	}

	user, err = c.client.CurrentUser(ctx)
	if err != nil {
		c.logger.Debug().Err(err).Msg("Identity retry failed")
		c.reject(ctx, RetryRejected)
		return
	}
	c.fire(RetryResolved, user)
}

// reject ends resolution and drops the stored tokens. A cancelled context
// says nothing about the tokens, so they are kept in that case.
func (c *Controller) reject(ctx context.Context, trigger Trigger) {
	if !c.fire(trigger, nil) {
		return
	}
	if ctx.Err() != nil {
		c.logger.Debug().Err(ctx.Err()).Msg("Resolution cancelled, keeping tokens")
		return
	}
	if err := c.store.Clear(context.WithoutCancel(ctx)); err != nil {
		c.logger.Warn().Err(err).Msg("Clearing tokens failed")
	}
}

// fire applies trigger and reports whether it was accepted.
func (c *Controller) fire(trigger Trigger, user *users.User) bool {
	c.mu.Lock()
	from := c.phase
	to, nextStep, ok := next(c.phase, c.step, trigger)
	if !ok {
		c.mu.Unlock()
		c.logger.Debug().Str("phase", from.String()).Str("step", c.step.String()).Str("trigger", string(trigger)).Msg("Ignoring trigger")
		return false
	}
	c.phase, c.step = to, nextStep
	switch to {
	case Authenticated:
		if user != nil {
			u := *user
			c.user = &u
		}
	case Anonymous:
		c.user = nil
	}
	observers := c.observers
	c.mu.Unlock()

	t := Transition{From: from, To: to, Trigger: trigger}
	c.logger.Debug().Str("from", from.String()).Str("to", to.String()).Str("trigger", string(trigger)).Msg("Session transition")
	for _, fn := range observers {
		fn(t)
	}
	return true
}

// Login authenticates and returns the path to navigate to. Backend errors
// are returned unchanged and leave the state as it was.
func (c *Controller) Login(ctx context.Context, creds users.Credentials) (string, error) {
	if c.isClosed() {
		return "", errors.ErrSessionClosed
	}
	resp, err := c.client.Login(ctx, creds)
	if err != nil {
		return "", err
	}
	user := resp.User
	c.fire(LoggedIn, &user)
	return DashboardPath(user), nil
}

// Register creates the account and then logs in with the same credentials.
func (c *Controller) Register(ctx context.Context, creds users.Credentials) (string, error) {
	if c.isClosed() {
		return "", errors.ErrSessionClosed
	}
	if _, err := c.client.Register(ctx, creds); err != nil {
		return "", err
	}
	return c.Login(ctx, creds)
}

// Logout always signs out locally. A backend failure is logged, not returned.
func (c *Controller) Logout(ctx context.Context) string {
	if err := c.client.Logout(ctx); err != nil {
		c.logger.Warn().Err(err).Msg("Logout failed")
	}
	c.fire(LoggedOut, nil)
	return LoginPath
}

func (c *Controller) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s := State{Phase: c.phase, IsLoading: c.phase.Loading()}
	if c.user != nil {
		u := *c.user
		s.User = &u
	}
	return s
}

func (c *Controller) User() (*users.User, bool) {
	s := c.State()
	return s.User, s.User != nil
}

func (c *Controller) IsAuthenticated() bool {
	return c.State().IsAuthenticated()
}

// Done is closed when Resolve has finished.
func (c *Controller) Done() <-chan struct{} {
	return c.done
}

// Close drops the identity and closes the token store when it holds resources.
func (c *Controller) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.user = nil
	c.mu.Unlock()

	if closer, ok := c.store.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

func (c *Controller) isClosed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}
