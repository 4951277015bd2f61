// Package guard decides what a protected page request should do given the
// current session.
package guard

import (
	"strings"

	"github.com/jrsteele09/wave-console/session"
)

type Action int

const (
	// Render lets the page through.
	Render Action = iota
	// Loading shows a placeholder while the startup check runs.
	Loading
	RedirectLogin
	// RedirectUser moves the request under the signed-in user's id.
	RedirectUser
)

func (a Action) String() string {
	switch a {
	case Render:
		return "render"
	case Loading:
		return "loading"
	case RedirectLogin:
		return "redirect-login"
	case RedirectUser:
		return "redirect-user"
	default:
		return "unknown"
	}
}

// Decision is the outcome for one request. Target is set for redirects.
type Decision struct {
	Action Action
	Target string
}

// Evaluate is a pure function of its inputs. requestPath may carry a query
// string, which a user redirect keeps.
func Evaluate(state session.State, pathUserID, requestPath string) Decision {
	switch {
	case state.IsLoading:
		return Decision{Action: Loading}
	case state.User == nil:
		return Decision{Action: RedirectLogin, Target: session.LoginPath}
	}

	id := state.User.IDString()
	if id == pathUserID {
		return Decision{Action: Render}
	}
	return Decision{Action: RedirectUser, Target: Rebuild(requestPath, id)}
}

// Rebuild replaces the first path segment of requestPath with userID.
func Rebuild(requestPath, userID string) string {
	path, query, hasQuery := strings.Cut(requestPath, "?")
	path = strings.TrimPrefix(path, "/")

	rest := ""
	if i := strings.IndexByte(path, '/'); i >= 0 {
		rest = path[i:]
	}

	out := "/" + userID + rest
	if hasQuery {
		out += "?" + query
	}
	return out
}
