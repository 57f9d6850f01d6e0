package server

import (
	"net/http"

	"github.com/agentstation/jokeraudit/internal/server/middleware"
	"github.com/agentstation/jokeraudit/internal/server/response"
)

// setupRouter creates the HTTP handler with routes and middleware.
func (s *Server) setupRouter() http.Handler {
	mux := http.NewServeMux()
	s.registerRoutes(mux)
	return s.applyMiddleware(mux)
}

// methods routes by request method and answers 405 otherwise.
func methods(routes map[string]http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h, ok := routes[r.Method]; ok {
			h(w, r)
			return
		}
		response.MethodNotAllowed(w, r.Method)
	}
}

func get(h http.HandlerFunc) http.HandlerFunc {
	return methods(map[string]http.HandlerFunc{http.MethodGet: h})
}

// registerRoutes registers all HTTP routes.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	h := s.handlers
	prefix := s.config.PathPrefix

	mux.HandleFunc("/favicon.ico", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	// Public health endpoints
	mux.HandleFunc("/health", get(h.HandleHealth))
	mux.HandleFunc(prefix+"/health", get(h.HandleHealth))
	mux.HandleFunc(prefix+"/ready", get(h.HandleReady))

	// Audit endpoints
	mux.HandleFunc(prefix+"/audit", methods(map[string]http.HandlerFunc{
		http.MethodGet:  h.HandleAudit,
		http.MethodPost: h.HandleAuditPost,
	}))
	mux.HandleFunc(prefix+"/canonicalize", methods(map[string]http.HandlerFunc{
		http.MethodGet:  h.HandleCanonicalize,
		http.MethodPost: h.HandleCanonicalize,
	}))
	mux.HandleFunc(prefix+"/overrides", get(h.HandleOverrides))
	mux.HandleFunc(prefix+"/stats", get(h.HandleStats))
	mux.HandleFunc(prefix+"/cache", methods(map[string]http.HandlerFunc{
		http.MethodDelete: h.HandleCacheClear,
	}))

	// Real-time endpoints
	mux.HandleFunc(prefix+"/updates/ws", get(h.HandleWebSocket))
	mux.HandleFunc(prefix+"/updates/stream", get(h.HandleSSE))

	if s.config.MetricsEnabled {
		mux.HandleFunc("/metrics", get(h.HandleMetrics))
	}

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Not found", "No route for "+r.URL.Path)
	})
}

// applyMiddleware wraps handler with the middleware chain. Requests pass
// through Recovery, Logger, CORS, Auth and RateLimit in that order.
func (s *Server) applyMiddleware(handler http.Handler) http.Handler {
	cfg := s.config

	if s.rateLimiter != nil {
		handler = middleware.RateLimit(s.rateLimiter)(handler)
	}

	if cfg.AuthEnabled {
		authConfig := middleware.DefaultAuthConfig()
		authConfig.Enabled = true
		authConfig.HeaderName = cfg.AuthHeader
		authConfig.PublicPaths = middleware.PublicPathsFor(cfg.PathPrefix)
		handler = middleware.Auth(authConfig, s.logger)(handler)
	}

	if cfg.CORSEnabled {
		corsConfig := middleware.DefaultCORSConfig()
		if len(cfg.CORSOrigins) > 0 {
			corsConfig.AllowedOrigins = cfg.CORSOrigins
		} else {
			corsConfig.AllowAll = true
		}
		handler = middleware.CORS(corsConfig)(handler)
	}

	return middleware.Chain(
		middleware.Recovery(s.logger),
		middleware.Logger(s.logger),
	)(handler)
}
