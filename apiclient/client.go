// Package apiclient talks to the Wave REST backend. It attaches bearer
// tokens from the token store, normalises failures into *APIError and keeps
// the token store in step with login, refresh and logout.
package apiclient

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/jrsteele09/wave-console/internal/errors"
	"github.com/jrsteele09/wave-console/tokens"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

const (
	DefaultTimeout  = 15 * time.Second
	RequestIDHeader = "X-Request-ID"
)

// Client is the backend client. It is safe for concurrent use.
type Client struct {
	http     *resty.Client
	store    tokens.Store
	logger   zerolog.Logger
	rotation bool
}

type Option func(*Client)

// WithTimeout bounds every backend request.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.SetTimeout(d)
		}
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// WithRotation stores a refresh token returned by /auth/refresh instead of
// keeping the one issued at login.
func WithRotation(enabled bool) Option {
	return func(c *Client) {
		c.rotation = enabled
	}
}

// WithHTTPClient swaps the underlying http.Client. Apply it before WithTimeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = resty.NewWithClient(hc).
			SetBaseURL(c.http.BaseURL).
			SetTimeout(DefaultTimeout)
		c.install()
	}
}

// New returns a client for the backend at baseURL that reads and writes
// tokens through store.
func New(baseURL string, store tokens.Store, opts ...Option) *Client {
	if store == nil {
		store = tokens.Unavailable{}
	}
	c := &Client{
		http:   resty.New().SetBaseURL(strings.TrimRight(baseURL, "/")).SetTimeout(DefaultTimeout),
		store:  store,
		logger: log.Logger,
	}
	c.install()
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// install wires the codec and request hooks onto the underlying resty client.
func (c *Client) install() {
	c.http.
		SetRetryCount(0).
		SetJSONMarshaler(json.Marshal).
		SetJSONUnmarshaler(json.Unmarshal).
		SetHeader("Accept", "application/json").
		OnBeforeRequest(setRequestID).
		SetPreRequestHook(setBearer)
}

// Store returns the token store the client writes to.
func (c *Client) Store() tokens.Store {
	return c.store
}

type ctxKey int

const (
	bearerKey ctxKey = iota
	requestIDKey
)

// WithRequestID returns a context whose outbound requests carry id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestID returns the id stored by WithRequestID.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// withBearer returns ctx whose requests send raw as a bearer token.
func withBearer(ctx context.Context, raw string) context.Context {
	return context.WithValue(ctx, bearerKey, &oauth2.Token{AccessToken: raw, TokenType: "Bearer"})
}

func setRequestID(_ *resty.Client, r *resty.Request) error {
	id := RequestID(r.Context())
	if id == "" {
		id = uuid.NewString()
	}
	r.SetHeader(RequestIDHeader, id)
	return nil
}

func setBearer(_ *resty.Client, r *http.Request) error {
	tok, ok := r.Context().Value(bearerKey).(*oauth2.Token)
	if !ok || tok == nil || tok.AccessToken == "" {
		return nil
	}
	tok.SetAuthHeader(r)
	return nil
}

// authorized returns ctx carrying the stored token of the given kind. A
// missing token leaves the header off and lets the backend reject the call.
func (c *Client) authorized(ctx context.Context, kind tokens.Kind) context.Context {
	raw, err := c.store.Read(ctx, kind)
	if err != nil {
		if !errors.Is(err, errors.ErrTokenNotFound) {
			c.logger.Warn().Err(err).Stringer("kind", kind).Msg("Reading token failed")
		}
		return ctx
	}
	return withBearer(ctx, raw)
}

// do sends the request and decodes a 2xx body into out.
func (c *Client) do(ctx context.Context, method, path string, body, out any, query map[string]string) error {
	req := c.http.R().SetContext(ctx)
	if body != nil {
		req.SetBody(body)
	}
	if len(query) > 0 {
		req.SetQueryParams(query)
	}

	start := time.Now()
	resp, err := req.Execute(method, path)
	if err != nil {
		c.logger.Debug().Err(err).Str("method", method).Str("path", path).Msg("Backend unreachable")
		return networkError(err)
	}

	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode()).
		Dur("duration", time.Since(start)).
		Msg("Backend call")

	if !resp.IsSuccess() {
		return fromResponse(resp.StatusCode(), resp.Body())
	}
	if out == nil || len(resp.Body()) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return &APIError{Message: "Unexpected response from server", Status: resp.StatusCode(), cause: errors.Wrapf(err, "decode %s %s", method, path)}
	}
	return nil
}
