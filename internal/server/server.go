// Package server provides the HTTP server for the fgsite API.
package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/fostergreatness/fgsite/cmd/application"
	"github.com/fostergreatness/fgsite/internal/server/cache"
	"github.com/fostergreatness/fgsite/internal/server/middleware"
	"github.com/fostergreatness/fgsite/pkg/constants"
)

// Server holds the HTTP server state and dependencies.
type Server struct {
	app       application.Application
	cache     cache.Cache
	limiter   *middleware.RateLimiter
	logger    *zerolog.Logger
	config    Config
	startTime time.Time
}

// New creates a new server instance with the given configuration.
// A configured Redis URL must be reachable.
func New(ctx context.Context, app application.Application, cfg Config) (*Server, error) {
	logger := app.Logger()

	logger.Debug().Msg("Creating new server instance")

	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	if cfg.AuthHeader == "" {
		cfg.AuthHeader = "X-API-Key"
	}

	var c cache.Cache
	if cfg.RedisURL != "" {
		logger.Debug().Msg("Connecting to Redis cache")
		rc, err := cache.NewRedis(ctx, cfg.RedisURL, cfg.CacheTTL)
		if err != nil {
			return nil, fmt.Errorf("connecting to redis: %w", err)
		}
		c = rc
	} else {
		c = cache.NewMemory(cfg.CacheTTL, constants.CacheCleanupInterval)
	}

	server := &Server{
		app:       app,
		cache:     c,
		logger:    logger,
		config:    cfg,
		startTime: time.Now(),
	}
	if cfg.RateLimit > 0 {
		server.limiter = middleware.NewRateLimiter(cfg.RateLimit, logger)
	}

	logger.Debug().
		Str("cache", c.Name()).
		Msg("Server instance created successfully")
	return server, nil
}

// Handler returns the configured http.Handler with middleware chain applied.
func (s *Server) Handler() http.Handler {
	return s.setupRouter()
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return net.JoinHostPort(s.config.Host, strconv.Itoa(s.config.Port))
}

// HTTPServer returns an http.Server for Addr with the configured timeouts.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         s.Addr(),
		Handler:      s.Handler(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}
}

// Shutdown stops background services and releases the cache connection.
func (s *Server) Shutdown(_ context.Context) error {
	s.logger.Info().Msg("Shutting down server background services")

	if s.limiter != nil {
		s.limiter.Stop()
	}
	if closer, ok := s.cache.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			return fmt.Errorf("closing cache: %w", err)
		}
	}
	return nil
}

// Cache returns the server's response cache.
func (s *Server) Cache() cache.Cache {
	return s.cache
}

// StartTime returns the server start time for uptime calculations.
func (s *Server) StartTime() time.Time {
	return s.startTime
}
