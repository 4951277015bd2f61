package server

import (
	"net/http"
	"time"

	"github.com/jrsteele09/wave-console/tokens"
	"github.com/rs/zerolog/log"
)

type dashboardData struct {
	pageData
	UserID       string
	TokenExpires string
	TokenExpired bool
}

// DashboardHandler shows the signed-in identity (GET /{userId}/dashboard)
func (s *Server) DashboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := dashboardData{pageData: s.page("Dashboard"), UserID: r.PathValue("userId")}

		if raw, err := s.store.Read(r.Context(), tokens.Access); err == nil {
			claims, err := tokens.Inspect(raw)
			switch {
			case err != nil:
				log.Debug().Err(err).Msg("Access token not inspectable")
			case !claims.ExpiresAt.IsZero():
				data.TokenExpires = claims.ExpiresAt.Local().Format(time.RFC1123)
				data.TokenExpired = claims.Expired(time.Now())
			}
		}

		s.render(w, http.StatusOK, "dashboard.html", data)
	}
}
