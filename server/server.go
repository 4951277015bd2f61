package server

import (
	"context"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/jrsteele09/wave-console/customers"
	"github.com/jrsteele09/wave-console/estimates"
	"github.com/jrsteele09/wave-console/internal/config"
	"github.com/jrsteele09/wave-console/items"
	"github.com/jrsteele09/wave-console/paging"
	"github.com/jrsteele09/wave-console/session"
	"github.com/jrsteele09/wave-console/tokens"
	"github.com/rs/zerolog/log"
)

// Resources is the part of the backend client the estimate pages use.
type Resources interface {
	ListEstimates(ctx context.Context, p paging.Params) (*estimates.Page, error)
	CreateEstimate(ctx context.Context, e estimates.NewEstimate) (*estimates.Created, error)
	ListCustomers(ctx context.Context, p paging.Params) (*customers.Page, error)
	ListItems(ctx context.Context, p paging.Params) (*items.Page, error)
}

type Server struct {
	env       string // Environment (e.g., "DEV", "PROD")
	mux       *http.ServeMux
	routes    []string
	config    config.Config
	session   *session.Controller
	api       Resources
	store     tokens.Store
	templates map[string]*template.Template
}

// New builds the console. ctrl is the process-wide session; store is only
// read, to show token details on the dashboard.
func New(config config.Config, ctrl *session.Controller, api Resources, store tokens.Store) (*Server, error) {
	if store == nil {
		store = tokens.Unavailable{}
	}
	s := &Server{
		env:     config.GetEnv(),
		mux:     http.NewServeMux(),
		config:  config,
		session: ctrl,
		api:     api,
		store:   store,
	}

	templates, err := parsePages()
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to parse templates: %w", err)
	}
	s.templates = templates

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	log.Debug().Msgf("[%-19s] %s", colourMethod(method), path)
}

func logError(method, path string, err error) {
	log.Error().Err(err).Msgf("[%-19s] %s", colourMethod(method), path)
}
