// Package tokens holds the access/refresh token pair and the Store contract
// used to persist it between runs.
//
// A Store is an opaque string store keyed by two fixed identifiers. It does
// not validate tokens; Inspect can be used separately for diagnostics.
package tokens

import (
	"context"
	"fmt"

	"github.com/jrsteele09/wave-console/internal/errors"
	"golang.org/x/oauth2"
)

// Fixed storage keys, shared by every backend.
const (
	AccessKey  = "wave_access_token"
	RefreshKey = "wave_refresh_token"
)

// Kind selects one of the two stored tokens.
type Kind int

const (
	Access Kind = iota
	Refresh
)

// Key returns the storage key for k.
func (k Kind) Key() string {
	switch k {
	case Access:
		return AccessKey
	case Refresh:
		return RefreshKey
	default:
		return ""
	}
}

func (k Kind) String() string {
	switch k {
	case Access:
		return "access"
	case Refresh:
		return "refresh"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Pair is the access and refresh token issued together on login.
type Pair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// OAuth2 returns the pair as a bearer oauth2.Token.
func (p Pair) OAuth2() *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  p.AccessToken,
		RefreshToken: p.RefreshToken,
		TokenType:    "Bearer",
	}
}

// Store persists the token pair.
//
// Read returns errors.ErrTokenNotFound when the value was never written,
// was written empty, was cleared, or no storage medium is available. Write overwrites both
// values. Clear removes both. Write and Clear are no-ops without a medium.
type Store interface {
	Read(ctx context.Context, kind Kind) (string, error)
	Write(ctx context.Context, pair Pair) error
	Clear(ctx context.Context) error
}

// HasAccessToken reports whether s currently holds an access token.
func HasAccessToken(ctx context.Context, s Store) bool {
	_, err := s.Read(ctx, Access)
	return err == nil
}

// ReadPair returns both tokens. A missing refresh token is not an error.
func ReadPair(ctx context.Context, s Store) (Pair, error) {
	access, err := s.Read(ctx, Access)
	if err != nil {
		return Pair{}, err
	}
	refresh, err := s.Read(ctx, Refresh)
	if err != nil && !errors.Is(err, errors.ErrTokenNotFound) {
		return Pair{}, err
	}
	return Pair{AccessToken: access, RefreshToken: refresh}, nil
}

// Unavailable is the Store used when there is nowhere to keep tokens.
type Unavailable struct{}

var _ Store = Unavailable{}

func (Unavailable) Read(context.Context, Kind) (string, error) {
	return "", errors.ErrTokenNotFound
}

func (Unavailable) Write(context.Context, Pair) error { return nil }

func (Unavailable) Clear(context.Context) error { return nil }
