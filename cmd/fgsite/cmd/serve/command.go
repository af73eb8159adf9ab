// Package serve provides the HTTP server command for the fgsite CLI.
package serve

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/fostergreatness/fgsite/cmd/application"
	"github.com/fostergreatness/fgsite/internal/cmd/cmdutil"
	"github.com/fostergreatness/fgsite/internal/cmd/emoji"
	"github.com/fostergreatness/fgsite/internal/server"
	"github.com/fostergreatness/fgsite/pkg/constants"
)

// NewCommand creates the serve command. defaults seeds the flag defaults.
func NewCommand(app application.Application, defaults server.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "serve",
		Aliases: []string{"server"},
		GroupID: "core",
		Short:   "Start the site API server",
		Long: `Start the API server behind the Foster Greatness site.

Routes:
  GET  /api/newsletter   three most recent confirmed newsletter posts
  POST /api/subscribe    newsletter signup relay
  GET  /api/events       upcoming community events (?view=preview, ?format=cards)
  GET  /api/videos       playlist videos
  GET  /health, /ready   liveness and readiness probes
  GET  /metrics          Prometheus metrics

Admin routes (/api/admin/stats, /api/admin/cache/purge) are enabled when
ADMIN_API_KEY is set. Responses are cached in memory, or in Redis when
REDIS_URL is set.`,
		Example: `  # Start on default port 8080
  fgsite serve

  # Bind all interfaces with a lower rate limit
  fgsite serve --host 0.0.0.0 --rate-limit 30

  # Allow an extra origin
  fgsite serve --cors-origins "https://preview.fostergreatness.co"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd, args, app)
		},
	}

	// Server configuration flags
	cmd.Flags().Int("port", defaults.Port, "Server port")
	cmd.Flags().String("host", defaults.Host, "Bind address")

	// CORS flags
	cmd.Flags().Bool("cors", defaults.CORSEnabled, "Send CORS headers")
	cmd.Flags().StringSlice("cors-origins", defaults.CORSOrigins, "Allowed CORS origins (comma-separated, default: site origins)")

	// Admin flags
	cmd.Flags().String("admin-key", defaults.AdminAPIKey, "API key for admin routes (empty disables them)")
	cmd.Flags().String("auth-header", defaults.AuthHeader, "Admin authentication header name")

	// Cache and performance flags
	cmd.Flags().String("redis-url", defaults.RedisURL, "Redis URL for the shared response cache")
	cmd.Flags().Int("rate-limit", defaults.RateLimit, "Requests per minute per IP (0 to disable)")
	cmd.Flags().Duration("cache-ttl", defaults.CacheTTL, "Default cache TTL")

	// Timeout flags
	cmd.Flags().Duration("read-timeout", defaults.ReadTimeout, "HTTP read timeout")
	cmd.Flags().Duration("write-timeout", defaults.WriteTimeout, "HTTP write timeout")
	cmd.Flags().Duration("idle-timeout", defaults.IdleTimeout, "HTTP idle timeout")

	// Features flags
	cmd.Flags().Bool("metrics", defaults.MetricsEnabled, "Enable metrics endpoint")

	return cmd
}

// runServer starts the API server.
func runServer(cmd *cobra.Command, _ []string, app application.Application) error {
	cfg := parseConfig(cmd)
	logger := app.Logger()

	logger.Info().
		Int("port", cfg.Port).
		Str("host", cfg.Host).
		Bool("cors", cfg.CORSEnabled).
		Bool("admin", cfg.AdminAPIKey != "").
		Bool("redis", cfg.RedisURL != "").
		Int("rate_limit", cfg.RateLimit).
		Msg("Starting API server")

	srv, err := server.New(cmd.Context(), app, cfg)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	logger.Debug().
		Str("addr", srv.Addr()).
		Dur("read_timeout", cfg.ReadTimeout).
		Dur("write_timeout", cfg.WriteTimeout).
		Dur("idle_timeout", cfg.IdleTimeout).
		Msg("Creating HTTP server")

	return startWithGracefulShutdown(cmd, srv.HTTPServer(), srv, logger)
}

// parseConfig parses command flags into server configuration. HTTP_HOST and
// HTTP_PORT apply when the matching flag was not given.
func parseConfig(cmd *cobra.Command) server.Config {
	port := cmdutil.MustGetInt(cmd, "port")
	host := cmdutil.MustGetString(cmd, "host")

	if envPort := os.Getenv("HTTP_PORT"); envPort != "" && !cmd.Flags().Changed("port") {
		if p, err := parsePort(envPort); err == nil {
			port = p
		}
	}
	if envHost := os.Getenv("HTTP_HOST"); envHost != "" && !cmd.Flags().Changed("host") {
		host = envHost
	}

	return server.Config{
		Host:           host,
		Port:           port,
		CORSEnabled:    cmdutil.MustGetBool(cmd, "cors"),
		CORSOrigins:    cmdutil.MustGetStringSlice(cmd, "cors-origins"),
		AdminAPIKey:    cmdutil.MustGetString(cmd, "admin-key"),
		AuthHeader:     cmdutil.MustGetString(cmd, "auth-header"),
		RedisURL:       cmdutil.MustGetString(cmd, "redis-url"),
		RateLimit:      cmdutil.MustGetInt(cmd, "rate-limit"),
		CacheTTL:       cmdutil.MustGetDuration(cmd, "cache-ttl"),
		ReadTimeout:    cmdutil.MustGetDuration(cmd, "read-timeout"),
		WriteTimeout:   cmdutil.MustGetDuration(cmd, "write-timeout"),
		IdleTimeout:    cmdutil.MustGetDuration(cmd, "idle-timeout"),
		MetricsEnabled: cmdutil.MustGetBool(cmd, "metrics"),
	}
}

// parsePort safely parses a port string to integer.
func parsePort(portStr string) (int, error) {
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return 0, fmt.Errorf("invalid port number: %s", portStr)
	}
	if port < 1 || port > 65535 {
		return 0, fmt.Errorf("port out of range: %d", port)
	}
	return port, nil
}

// startWithGracefulShutdown runs the HTTP server until the command context
// is cancelled, then drains connections.
func startWithGracefulShutdown(cmd *cobra.Command, httpServer *http.Server, srv *server.Server, logger *zerolog.Logger) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	serverErr := make(chan error, 1)

	go func() {
		logger.Info().
			Str("addr", httpServer.Addr).
			Msg("HTTP server listening")

		fmt.Fprintf(out, "API server listening on %s\n", httpServer.Addr)
		fmt.Fprintln(out, "   Press Ctrl+C to stop")

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- fmt.Errorf("server failed: %w", err)
		}
	}()

	select {
	case err := <-serverErr:
		_ = srv.Shutdown(context.Background())
		return err
	case <-ctx.Done():
		logger.Info().Msg("Shutdown signal received via context")
		fmt.Fprintf(out, "\n%s Shutting down API server...\n", emoji.Stop)

		// The parent context is already cancelled.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn().Err(err).Msg("Background services shutdown had issues")
		}

		logger.Info().Msg("Server stopped gracefully")
		fmt.Fprintf(out, "%s API server stopped gracefully\n", emoji.Success)
		return nil
	}
}
