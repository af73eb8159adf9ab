// Package application provides the application interface for fgsite commands
// and the HTTP server.
//
// The Application interface defines the contract between the application layer
// and its consumers, so commands and handlers can be tested with mocks:
//
//	mock := &application.Mock{
//	    NewsletterFunc: func() application.NewsletterSource {
//	        return fakeNewsletter
//	    },
//	}
//	cmd := newsletter.NewCommand(mock)
package application

import (
	"context"
	"slices"
	"time"

	"github.com/rs/zerolog"

	"github.com/fostergreatness/fgsite/pkg/events"
	"github.com/fostergreatness/fgsite/pkg/newsletter"
	"github.com/fostergreatness/fgsite/pkg/subscription"
	"github.com/fostergreatness/fgsite/pkg/videos"
)

// EventsSource supplies raw community event records.
type EventsSource interface {
	FetchRecords(ctx context.Context) ([]events.Record, error)
}

// NewsletterSource supplies recent newsletter posts.
type NewsletterSource interface {
	FetchRecentPosts(ctx context.Context, limit int) ([]newsletter.PublicPost, error)
	Configured() bool
}

// Subscriber relays newsletter signups.
type Subscriber interface {
	Subscribe(ctx context.Context, req subscription.Request) (*subscription.Confirmation, error)
	Configured() bool
}

// VideoSource supplies playlist videos.
type VideoSource interface {
	FetchPlaylist(ctx context.Context, playlistID string, maxResults int) ([]videos.Video, error)
	Configured() bool
}

// Feeds holds the per-feed settings shared by the server and the CLI.
type Feeds struct {
	EventsCategory     string
	EventsLocation     *time.Location
	EventsListingLimit int
	EventsPreviewLimit int
	EventsCacheTTL     time.Duration

	NewsletterLimit    int
	NewsletterCacheTTL time.Duration

	PlaylistID       string
	AllowedPlaylists []string
	VideosMaxResults int
	VideosCacheTTL   time.Duration
}

// PlaylistAllowed reports whether the HTTP API may serve playlist id.
// Only the configured playlist and the allow-list are served.
func (f Feeds) PlaylistAllowed(id string) bool {
	return id != "" && (id == f.PlaylistID || slices.Contains(f.AllowedPlaylists, id))
}

// Application provides the application interface that commands need.
// The App struct from cmd/fgsite/app implements it.
//
// Thread Safety: All methods must be safe for concurrent access.
type Application interface {
	// Events returns the events source client.
	Events() EventsSource

	// Newsletter returns the newsletter client.
	Newsletter() NewsletterSource

	// Subscriptions returns the subscription relay.
	Subscriptions() Subscriber

	// Videos returns the playlist client.
	Videos() VideoSource

	// Feeds returns the feed settings.
	Feeds() Feeds

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (json, yaml, table).
	OutputFormat() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
