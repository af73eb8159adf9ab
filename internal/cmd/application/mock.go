// Package application provides test doubles for the application interface.
package application

import (
	"time"

	"github.com/rs/zerolog"

	app "github.com/fostergreatness/fgsite/cmd/application"
	"github.com/fostergreatness/fgsite/pkg/constants"
)

// Mock provides a mock implementation of Application for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default/zero value.
type Mock struct {
	EventsFunc        func() app.EventsSource
	NewsletterFunc    func() app.NewsletterSource
	SubscriptionsFunc func() app.Subscriber
	VideosFunc        func() app.VideoSource
	FeedsFunc         func() app.Feeds
	LoggerFunc        func() *zerolog.Logger
	OutputFormatFunc  func() string
	VersionFunc       func() string
	CommitFunc        func() string
	DateFunc          func() string
	BuiltByFunc       func() string
}

var _ app.Application = (*Mock)(nil)

// Events returns the events source using the mock function or nil.
func (m *Mock) Events() app.EventsSource {
	if m.EventsFunc != nil {
		return m.EventsFunc()
	}
	return nil
}

// Newsletter returns the newsletter source using the mock function or nil.
func (m *Mock) Newsletter() app.NewsletterSource {
	if m.NewsletterFunc != nil {
		return m.NewsletterFunc()
	}
	return nil
}

// Subscriptions returns the relay using the mock function or nil.
func (m *Mock) Subscriptions() app.Subscriber {
	if m.SubscriptionsFunc != nil {
		return m.SubscriptionsFunc()
	}
	return nil
}

// Videos returns the video source using the mock function or nil.
func (m *Mock) Videos() app.VideoSource {
	if m.VideosFunc != nil {
		return m.VideosFunc()
	}
	return nil
}

// Feeds returns the feed settings using the mock function or the defaults.
func (m *Mock) Feeds() app.Feeds {
	if m.FeedsFunc != nil {
		return m.FeedsFunc()
	}
	return DefaultFeeds()
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns output format using the mock function or "json".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "json"
}

// Version returns version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns commit using the mock function or "unknown".
func (m *Mock) Commit() string {
	if m.CommitFunc != nil {
		return m.CommitFunc()
	}
	return "unknown"
}

// Date returns date using the mock function or "unknown".
func (m *Mock) Date() string {
	if m.DateFunc != nil {
		return m.DateFunc()
	}
	return "unknown"
}

// BuiltBy returns builtBy using the mock function or "test".
func (m *Mock) BuiltBy() string {
	if m.BuiltByFunc != nil {
		return m.BuiltByFunc()
	}
	return "test"
}

// DefaultFeeds returns the production feed settings in UTC.
func DefaultFeeds() app.Feeds {
	return app.Feeds{
		EventsCategory:     constants.DefaultEventsCategory,
		EventsLocation:     time.UTC,
		EventsListingLimit: constants.EventsListingLimit,
		EventsPreviewLimit: constants.EventsPreviewLimit,
		EventsCacheTTL:     constants.EventsCacheTTL,
		NewsletterLimit:    constants.NewsletterLimit,
		NewsletterCacheTTL: constants.NewsletterCacheTTL,
		VideosMaxResults:   constants.YouTubeMaxResults,
		VideosCacheTTL:     constants.VideosCacheTTL,
	}
}
