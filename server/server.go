package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/go-auth-gateway/auth"
	"github.com/jrsteele09/go-auth-gateway/internal/config"
	"github.com/jrsteele09/go-auth-gateway/provider"
)

type Server struct {
	env      string // Environment (e.g., "DEV", "production")
	mux      *http.ServeMux
	routes   []string
	config   config.Config
	registry *provider.Registry
	auth     *auth.Service
}

// New wires the provider registry and the core auth service behind the HTTP
// surface. Registration order in the registry is deliberate: Google is
// probed before Authentik during bearer verification.
func New(cfg config.Config) *Server {
	registry := provider.NewRegistry(
		provider.NewGoogle(
			cfg.GetGoogleClientID(),
			cfg.GetGoogleClientSecret(),
			cfg.GetGoogleTokenURL(),
			cfg.GetGoogleUserinfoURL(),
		),
		provider.NewAuthentik(
			cfg.GetAuthentikURL(),
			cfg.GetAuthentikClientID(),
		),
	)

	s := &Server{
		mux:      http.NewServeMux(),
		config:   cfg,
		registry: registry,
		auth:     auth.NewService(registry, cfg),
	}
	s.env = cfg.GetEnv()

	for _, p := range registry.Ordered() {
		log.Info().
			Str("provider", string(p.ID)).
			Bool("configured", p.Configured()).
			Msg("provider registered")
	}

	s.initRoutes()
	s.logRoutes()

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
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
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	log.Printf("[%-19s] %s", displayMethod, path)
}
