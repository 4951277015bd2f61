package server

import (
	"fmt"
	"html"
	"net/http"
	"strings"

	"github.com/jrsteele09/wave-console/users"
	"github.com/rs/zerolog/log"
)

// authPageData backs the login and register forms.
type authPageData struct {
	pageData
	Email string // Preserve email on error
}

func (s *Server) authPage(title, email, errMsg string) authPageData {
	data := authPageData{pageData: s.page(title), Email: email}
	data.Error = errMsg
	return data
}

// LoginPageHandler displays the login page (GET /login)
func (s *Server) LoginPageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		s.render(w, http.StatusOK, "login.html", s.authPage("Sign in", q.Get("email"), bannerFromQuery(r)))
	}
}

// LoginSubmissionHandler processes the login form submission
func (s *Server) LoginSubmissionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		creds := users.Credentials{
			Email:    strings.TrimSpace(r.FormValue("email")),
			Password: r.FormValue("password"),
		}

		if err := users.ValidateCredentials(creds); err != nil {
			msg, status := failure(err)
			s.render(w, status, "login.html", s.authPage("Sign in", creds.Email, msg))
			return
		}

		path, err := s.session.Login(r.Context(), creds)
		if err != nil {
			log.Debug().Err(err).Str("email", creds.Email).Msg("Login rejected")
			msg, status := failure(err)
			s.render(w, status, "login.html", s.authPage("Sign in", creds.Email, msg))
			return
		}
		redirectSuccess(w, r, path)
	}
}

// RegisterPageHandler displays the registration page (GET /register)
func (s *Server) RegisterPageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		s.render(w, http.StatusOK, "register.html", s.authPage("Create account", q.Get("email"), bannerFromQuery(r)))
	}
}

// RegisterSubmissionHandler creates the account and signs in with it.
func (s *Server) RegisterSubmissionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		reg := users.Registration{
			Email:           strings.TrimSpace(r.FormValue("email")),
			Password:        r.FormValue("password"),
			ConfirmPassword: r.FormValue("confirm_password"),
		}

		if err := users.ValidateRegistration(reg); err != nil {
			msg, status := failure(err)
			s.render(w, status, "register.html", s.authPage("Create account", reg.Email, msg))
			return
		}

		path, err := s.session.Register(r.Context(), reg.Credentials())
		if err != nil {
			log.Debug().Err(err).Str("email", reg.Email).Msg("Registration rejected")
			msg, status := failure(err)
			s.render(w, status, "register.html", s.authPage("Create account", reg.Email, msg))
			return
		}
		redirectSuccess(w, r, path)
	}
}

// LogoutHandler signs out locally and on the backend (POST /logout)
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		redirectSuccess(w, r, s.session.Logout(r.Context()))
	}
}

// ValidatePasswordHandler gives live password feedback to the register form
func (s *Server) ValidatePasswordHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		password := r.FormValue("password")
		w.Header().Set("Content-Type", contentTypeHTML)

		if password == "" {
			w.WriteHeader(http.StatusOK)
			return
		}

		if err := users.ValidatePasswordStrength(password); err != nil {
			w.Header().Set("HX-Trigger", `{"passwordInvalid": ""}`)
			w.WriteHeader(http.StatusOK)
			fmt.Fprintf(w, `<span class="feedback invalid">%s</span>`, html.EscapeString(err.Error()))
			return
		}

		w.Header().Set("HX-Trigger", `{"passwordValid": ""}`)
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, `<span class="feedback valid">Strong password</span>`)
	}
}
