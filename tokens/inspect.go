package tokens

import (
	"fmt"
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/wave-console/internal/errors"
)

// Claims is the subset of an access token's payload shown for diagnostics.
type Claims struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the token carried an exp claim that is before now.
func (c Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}

// Inspect decodes raw without verifying its signature. The console never
// trusts these values for authorisation; the backend remains the authority.
func Inspect(raw string) (Claims, error) {
	if strings.Count(raw, ".") != 2 {
		return Claims{}, errors.ErrOpaqueToken
	}

	token, _, err := jwtlib.NewParser().ParseUnverified(raw, jwtlib.MapClaims{})
	if err != nil {
		return Claims{}, errors.Wrapf(err, "parse token")
	}
	mc, ok := token.Claims.(jwtlib.MapClaims)
	if !ok {
		return Claims{}, errors.ErrOpaqueToken
	}

	var c Claims
	// sub may be a number when the backend uses integer identities
	if sub, ok := mc["sub"]; ok && sub != nil {
		switch v := sub.(type) {
		case string:
			c.Subject = v
		case float64:
			c.Subject = fmt.Sprintf("%.0f", v)
		default:
			c.Subject = fmt.Sprint(v)
		}
	}
	if exp, err := mc.GetExpirationTime(); err == nil && exp != nil {
		c.ExpiresAt = exp.Time
	}
	if iat, err := mc.GetIssuedAt(); err == nil && iat != nil {
		c.IssuedAt = iat.Time
	}
	return c, nil
}
