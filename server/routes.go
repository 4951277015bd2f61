package server

import (
	"net/http"
	"strings"
)

func (s *Server) initRoutes() {
	s.RegisterRouteHandler("GET "+RouteIndex, ChainMiddleware(s.IndexHandler(), s.HTMLMiddleWare()...))

	// LOGIN / REGISTER
	s.RegisterRouteHandler("GET "+RouteLogin, ChainMiddleware(s.LoginPageHandler(), s.HTMLMiddleWare(s.RedirectAuthenticated)...))
	s.RegisterRouteHandler("POST "+RouteLogin, ChainMiddleware(s.LoginSubmissionHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("GET "+RouteRegister, ChainMiddleware(s.RegisterPageHandler(), s.HTMLMiddleWare(s.RedirectAuthenticated)...))
	s.RegisterRouteHandler("POST "+RouteRegister, ChainMiddleware(s.RegisterSubmissionHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("POST "+RouteLogout, ChainMiddleware(s.LogoutHandler(), s.HTMLMiddleWare()...))

	// Pages behind the session guard
	s.RegisterRouteHandler("GET "+RouteDashboard, ChainMiddleware(s.DashboardHandler(), s.HTMLMiddleWare(s.RequireSession)...))
	s.RegisterRouteHandler("GET "+RouteEstimates, ChainMiddleware(s.EstimatesListHandler(), s.HTMLMiddleWare(s.RequireSession)...))
	s.RegisterRouteHandler("GET "+RouteEstimateAdd, ChainMiddleware(s.EstimateFormHandler(), s.HTMLMiddleWare(s.RequireSession)...))
	s.RegisterRouteHandler("POST "+RouteEstimates, ChainMiddleware(s.EstimateSubmitHandler(), s.HTMLMiddleWare(s.RequireSession)...))

	// API routes
	s.RegisterRouteHandler("POST "+RouteAPIValidatePassword, ChainMiddleware(s.ValidatePasswordHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteAPISession, ChainMiddleware(s.SessionStatusHandler(), s.APIMiddleware()...))

	s.RegisterRouteHandler("GET "+RouteStaticCSS, ChainMiddleware(s.serveFileHandler(), s.StaticMiddleware()...))
}

func (s *Server) serveFileHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filePath := strings.TrimPrefix(r.URL.Path, "/static/")
		if filePath == "" {
			http.Error(w, "404 - Page Not Found", http.StatusNotFound)
			return
		}
		if err := StreamFile(w, r, filePath); err != nil {
			logError(r.Method, r.URL.Path, err)
			http.Error(w, "404 - Page Not Found", http.StatusNotFound)
			return
		}
	}
}
