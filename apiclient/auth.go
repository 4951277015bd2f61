package apiclient

import (
	"context"
	"net/http"

	"github.com/jrsteele09/wave-console/internal/errors"
	"github.com/jrsteele09/wave-console/tokens"
	"github.com/jrsteele09/wave-console/users"
)

type RegisterResponse struct {
	Message string     `json:"message"`
	User    users.User `json:"user"`
}

type LoginResponse struct {
	Message      string     `json:"message"`
	AccessToken  string     `json:"access_token"`
	RefreshToken string     `json:"refresh_token"`
	User         users.User `json:"user"`
}

type meResponse struct {
	User users.User `json:"user"`
}

type RefreshResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// Register creates an account. It does not log in.
func (c *Client) Register(ctx context.Context, creds users.Credentials) (*RegisterResponse, error) {
	var out RegisterResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", creds, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login exchanges credentials for a token pair and stores both tokens.
func (c *Client) Login(ctx context.Context, creds users.Credentials) (*LoginResponse, error) {
	var out LoginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", creds, &out, nil); err != nil {
		return nil, err
	}
	pair := tokens.Pair{AccessToken: out.AccessToken, RefreshToken: out.RefreshToken}
	if err := c.store.Write(ctx, pair); err != nil {
		return nil, errors.Wrapf(err, "store tokens")
	}
	return &out, nil
}

// CurrentUser returns the identity behind the stored access token.
func (c *Client) CurrentUser(ctx context.Context) (*users.User, error) {
	var out meResponse
	if err := c.do(c.authorized(ctx, tokens.Access), http.MethodGet, "/auth/me", nil, &out, nil); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// RefreshAccessToken trades the stored refresh token for a new access token.
// The refresh token itself is kept unless rotation is enabled and the
// backend returned a new one. Without a stored refresh token no request is
// made.
func (c *Client) RefreshAccessToken(ctx context.Context) (string, error) {
	refresh, err := c.store.Read(ctx, tokens.Refresh)
	if err != nil {
		if errors.Is(err, errors.ErrTokenNotFound) {
			return "", errNoRefreshToken()
		}
		return "", errors.Wrapf(err, "read refresh token")
	}

	var out RefreshResponse
	ctx = withBearer(ctx, refresh)
	if err := c.do(ctx, http.MethodPost, "/auth/refresh", nil, &out, nil); err != nil {
		return "", err
	}

	pair := tokens.Pair{AccessToken: out.AccessToken, RefreshToken: refresh}
	if c.rotation && out.RefreshToken != "" {
		pair.RefreshToken = out.RefreshToken
	}
	if err := c.store.Write(ctx, pair); err != nil {
		return "", errors.Wrapf(err, "store tokens")
	}
	return out.AccessToken, nil
}

// Logout ends the session on the backend. Local tokens are cleared whether
// or not the call succeeded, and even when ctx is already cancelled; the
// call's error is returned afterwards.
func (c *Client) Logout(ctx context.Context) error {
	var out messageResponse
	callErr := c.do(c.authorized(ctx, tokens.Access), http.MethodPost, "/auth/logout", nil, &out, nil)
	if err := c.store.Clear(context.WithoutCancel(ctx)); err != nil {
		c.logger.Warn().Err(err).Msg("Clearing tokens failed")
	}
	return callErr
}
