package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fostergreatness/fgsite/internal/server/handlers"
	"github.com/fostergreatness/fgsite/internal/server/middleware"
	"github.com/fostergreatness/fgsite/internal/server/response"
)

// Route paths.
const (
	RouteNewsletter = "/api/newsletter"
	RouteSubscribe  = "/api/subscribe"
	RouteEvents     = "/api/events"
	RouteVideos     = "/api/videos"
	RouteHealth     = "/health"
	RouteReady      = "/ready"
	RouteMetrics    = "/metrics"
	RouteStats      = "/api/admin/stats"
	RouteCachePurge = "/api/admin/cache/purge"
)

// routes lists the paths that get their own metrics label.
var routes = []string{
	RouteNewsletter, RouteSubscribe, RouteEvents, RouteVideos,
	RouteHealth, RouteReady, RouteMetrics, RouteStats, RouteCachePurge,
}

// setupRouter creates the HTTP handler with routes and middleware.
func (s *Server) setupRouter() http.Handler {
	mux := http.NewServeMux()

	h := handlers.New(s.app, s.cache, s.logger, s.startTime)

	s.registerRoutes(mux, h)

	return s.applyMiddleware(mux)
}

// registerRoutes registers all HTTP routes.
func (s *Server) registerRoutes(mux *http.ServeMux, h *handlers.Handlers) {
	// Favicon handler (return 204 No Content to avoid 404 logs)
	mux.HandleFunc("/favicon.ico", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		response.NotFound(w)
	})

	// Public health endpoints
	mux.HandleFunc(RouteHealth, h.HandleHealth)
	mux.HandleFunc(RouteReady, h.HandleReady)

	// Site feeds
	mux.HandleFunc(RouteNewsletter, h.HandleNewsletter)
	mux.HandleFunc(RouteSubscribe, h.HandleSubscribe)
	mux.HandleFunc(RouteEvents, h.HandleEvents)
	mux.HandleFunc(RouteVideos, h.HandleVideos)

	// Admin endpoints
	if s.config.AdminAPIKey != "" {
		mux.HandleFunc(RouteStats, h.HandleStats)
		mux.HandleFunc(RouteCachePurge, h.HandleCachePurge)
	}

	if s.config.MetricsEnabled {
		mux.Handle(RouteMetrics, promhttp.Handler())
	}
}

// applyMiddleware wraps handler with the middleware chain. Request ids are
// assigned first so recovery and request logs can carry them. Recovery sits
// inside logging and metrics so a recovered panic is still logged and counted.
func (s *Server) applyMiddleware(handler http.Handler) http.Handler {
	cfg := s.config
	chain := []func(http.Handler) http.Handler{
		middleware.RequestID,
		middleware.Logger(s.logger),
	}

	if cfg.MetricsEnabled {
		chain = append(chain, middleware.Metrics(routes))
	}

	chain = append(chain, middleware.Recovery(s.logger))

	if cfg.CORSEnabled {
		corsConfig := middleware.DefaultCORSConfig()
		if len(cfg.CORSOrigins) > 0 {
			corsConfig.AllowedOrigins = cfg.CORSOrigins
		}
		chain = append(chain, middleware.CORS(corsConfig))
	}

	if s.limiter != nil {
		chain = append(chain, middleware.RateLimit(s.limiter))
	}

	if cfg.AdminAPIKey != "" {
		authConfig := middleware.DefaultAuthConfig(cfg.AdminAPIKey)
		authConfig.HeaderName = cfg.AuthHeader
		chain = append(chain, middleware.Auth(authConfig, s.logger))
	}

	return middleware.Chain(chain...)(handler)
}
