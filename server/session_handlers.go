package server

import (
	"net/http"

	"github.com/goccy/go-json"
	"github.com/jrsteele09/wave-console/guard"
	"github.com/jrsteele09/wave-console/session"
	"github.com/jrsteele09/wave-console/users"
	"github.com/rs/zerolog/log"
)

// pageData is shared by every page template.
type pageData struct {
	AppName string
	Title   string
	User    *users.User
	Error   string
}

func (s *Server) page(title string) pageData {
	user, _ := s.session.User()
	return pageData{AppName: s.config.GetAppName(), Title: title, User: user}
}

// RequireSession runs the route guard for pages under /{userId}/.
func (s *Server) RequireSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		decision := guard.Evaluate(s.session.State(), r.PathValue("userId"), r.URL.RequestURI())
		switch decision.Action {
		case guard.Loading:
			s.renderLoading(w, r)
		case guard.RedirectLogin, guard.RedirectUser:
			log.Debug().Str("path", r.URL.Path).Str("action", decision.Action.String()).Str("target", decision.Target).Msg("Guard redirect")
			redirectSuccess(w, r, decision.Target)
		default:
			next(w, r)
		}
	}
}

// RedirectAuthenticated sends signed-in visitors of the login and register
// pages to their dashboard.
func (s *Server) RedirectAuthenticated(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if user, ok := s.session.User(); ok {
			redirectSuccess(w, r, session.DashboardPath(*user))
			return
		}
		next(w, r)
	}
}

func (s *Server) renderLoading(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Retry-After", "1")
	w.Header().Set("Refresh", "1")
	s.render(w, http.StatusServiceUnavailable, "loading.html", s.page("Loading"))
}

// IndexHandler renders the landing page
func (s *Server) IndexHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.session.State().IsLoading {
			s.renderLoading(w, r)
			return
		}
		s.render(w, http.StatusOK, "index.html", s.page("Welcome"))
	}
}

type sessionStatus struct {
	IsLoading       bool        `json:"is_loading"`
	IsAuthenticated bool        `json:"is_authenticated"`
	User            *users.User `json:"user"`
}

// SessionStatusHandler reports the session as JSON (GET /api/session).
func (s *Server) SessionStatusHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state := s.session.State()
		body, err := json.Marshal(sessionStatus{
			IsLoading:       state.IsLoading,
			IsAuthenticated: state.IsAuthenticated(),
			User:            state.User,
		})
		if err != nil {
			logError(r.Method, r.URL.Path, err)
			http.Error(w, "failed to encode session", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", contentTypeJSON)
		_, _ = w.Write(body)
	}
}
