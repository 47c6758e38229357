package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) initRoutes() {
	s.RegisterRouteFunc("GET "+RouteHealth, s.Health())
	s.RegisterRouteHandler("GET "+RouteMetrics, promhttp.Handler())

	// Login API
	s.RegisterRouteHandler("POST "+RouteLoginToken, ChainMiddleware(s.TokenExchange(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteLoginMe, ChainMiddleware(s.Me(), s.APIMiddleware()...))

	// Preflight: CorsMiddleware answers OPTIONS before the no-op runs
	s.RegisterRouteHandler("OPTIONS "+RouteLoginPrefix, ChainMiddleware(s.preflight(), s.APIMiddleware()...))
}

func (s *Server) preflight() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}
}
