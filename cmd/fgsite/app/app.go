// Package app provides the application context and dependency management
// for the fgsite CLI. It centralizes configuration, logging, and the
// upstream clients shared by the commands and the HTTP server.
package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/fostergreatness/fgsite/cmd/application"
	"github.com/fostergreatness/fgsite/internal/server"
	"github.com/fostergreatness/fgsite/internal/transport"
	"github.com/fostergreatness/fgsite/pkg/events"
	"github.com/fostergreatness/fgsite/pkg/newsletter"
	"github.com/fostergreatness/fgsite/pkg/subscription"
	"github.com/fostergreatness/fgsite/pkg/videos"
)

// App represents the fgsite application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger

	// Upstream clients, rebuilt whenever the configuration changes.
	mu         sync.RWMutex
	events     application.EventsSource
	newsletter application.NewsletterSource
	relay      application.Subscriber
	videos     application.VideoSource
	feeds      application.Feeds
}

var _ application.Application = (*App)(nil)

// New creates a new App instance with the given version information.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig("")
	if err != nil {
		return nil, err
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	if err := app.buildClients(); err != nil {
		return nil, err
	}

	// Options run last so injected clients replace the built ones.
	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// buildClients creates the upstream clients from the current configuration.
func (a *App) buildClients() error {
	cfg := a.config
	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	opts := []transport.Option{transport.WithTimeout(cfg.HTTPTimeout)}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.events = events.NewClient(cfg.Events.SourceURL, opts...)
	a.newsletter = newsletter.NewClient(newsletter.Config{
		APIKey:        cfg.Beehiiv.APIKey,
		PublicationID: cfg.Beehiiv.PublicationID,
		BaseURL:       cfg.Beehiiv.BaseURL,
	}, opts...)
	a.relay = subscription.NewRelay(subscription.Config{
		APIKey:        cfg.Beehiiv.APIKey,
		PublicationID: cfg.Beehiiv.PublicationID,
		BaseURL:       cfg.Beehiiv.BaseURL,
		Attribution:   cfg.Subscribe.Attribution,
		Profiles:      cfg.Subscribe.Profiles,
	}, opts...)
	a.videos = videos.NewClient(videos.Config{
		APIKey:  cfg.YouTube.APIKey,
		BaseURL: cfg.YouTube.BaseURL,
	}, opts...)
	a.feeds = application.Feeds{
		EventsCategory:     cfg.Events.Category,
		EventsLocation:     loc,
		EventsListingLimit: cfg.Events.ListingLimit,
		EventsPreviewLimit: cfg.Events.PreviewLimit,
		EventsCacheTTL:     cfg.Events.CacheTTL,
		NewsletterLimit:    cfg.Newsletter.Limit,
		NewsletterCacheTTL: cfg.Newsletter.CacheTTL,
		PlaylistID:         cfg.YouTube.PlaylistID,
		AllowedPlaylists:   cfg.YouTube.AllowedPlaylists,
		VideosMaxResults:   cfg.YouTube.MaxResults,
		VideosCacheTTL:     cfg.YouTube.CacheTTL,
	}
	return nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// Events returns the events source client.
func (a *App) Events() application.EventsSource {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.events
}

// Newsletter returns the newsletter client.
func (a *App) Newsletter() application.NewsletterSource {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.newsletter
}

// Subscriptions returns the subscription relay.
func (a *App) Subscriptions() application.Subscriber {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.relay
}

// Videos returns the playlist client.
func (a *App) Videos() application.VideoSource {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.videos
}

// Feeds returns the feed settings.
func (a *App) Feeds() application.Feeds {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.feeds
}

// ServerConfig returns the server configuration derived from the app config.
// Serve flags are applied on top of it.
func (a *App) ServerConfig() server.Config {
	cfg := server.DefaultConfig()
	cfg.RedisURL = a.config.RedisURL
	cfg.AdminAPIKey = a.config.AdminAPIKey
	return cfg
}

// Shutdown performs graceful shutdown of the application.
func (a *App) Shutdown(_ context.Context) error {
	a.logger.Debug().Msg("Application shut down")
	return nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration and rebuilds the clients.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return a.buildClients()
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithNewsletter replaces the newsletter client (useful for testing).
func WithNewsletter(source application.NewsletterSource) Option {
	return func(a *App) error {
		a.newsletter = source
		return nil
	}
}

// WithEvents replaces the events client (useful for testing).
func WithEvents(source application.EventsSource) Option {
	return func(a *App) error {
		a.events = source
		return nil
	}
}
