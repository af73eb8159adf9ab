// Package constants provides shared constants used throughout the fgsite codebase.
// This includes upstream endpoints, feed limits, timeouts and cache lifetimes
// that should be consistent between the server and the CLI.
package constants

import "time"

// Upstream endpoints
const (
	// BeehiivBaseURL is the root of the Beehiiv v2 API
	BeehiivBaseURL = "https://api.beehiiv.com/v2"

	// BeehiivPublicationID is the Foster Greatness publication
	BeehiivPublicationID = "pub_e597ede6-38aa-4b38-a981-ae7c8f63a77e"

	// EventsSourceURL serves the Circle community events as JSON
	EventsSourceURL = "https://circle-events-widget-23sx.vercel.app/api/events"

	// YouTubeBaseURL is the root of the YouTube Data API v3
	YouTubeBaseURL = "https://www.googleapis.com/youtube/v3"

	// YouTubeWatchURL prefixes a video id to form its public link
	YouTubeWatchURL = "https://youtube.com/watch?v="
)

// Upstream names used in logs, metrics and errors
const (
	UpstreamBeehiiv = "beehiiv"
	UpstreamEvents  = "events"
	UpstreamYouTube = "youtube"
)

// Feed limits
const (
	// DefaultEventsCategory is the community space shown on the site
	DefaultEventsCategory = "general-events"

	// EventsListingLimit caps the dedicated events page
	EventsListingLimit = 12

	// EventsPreviewLimit caps the home-page preview
	EventsPreviewLimit = 3

	// NewsletterLimit is the number of recent posts shown
	NewsletterLimit = 3

	// YouTubeMaxResults is the default playlist page size
	YouTubeMaxResults = 10

	// YouTubeMaxResultsCap is the largest page the API accepts
	YouTubeMaxResultsCap = 50
)

// Subscription attribution defaults
const (
	DefaultReferringSite = "https://storytellers-collective.com"
	DefaultUTMSource     = "website"
	DefaultUTMMedium     = "pdf_download"
	DefaultUTMCampaign   = "storytelling_guide"
)

// Timeout constants
const (
	// DefaultHTTPTimeout is the standard timeout for upstream HTTP requests
	DefaultHTTPTimeout = 15 * time.Second

	// CommandTimeout is the default timeout for CLI commands
	CommandTimeout = 1 * time.Minute

	// ShutdownTimeout bounds graceful server shutdown
	ShutdownTimeout = 30 * time.Second
)

// Cache constants
const (
	// NewsletterCacheTTL matches the hourly revalidation of the newsletter feed
	NewsletterCacheTTL = 1 * time.Hour

	// EventsCacheTTL bounds how stale the raw events list may be
	EventsCacheTTL = 5 * time.Minute

	// VideosCacheTTL bounds how stale a playlist may be
	VideosCacheTTL = 1 * time.Hour

	// CacheCleanupInterval is how often to clean expired cache entries
	CacheCleanupInterval = 10 * time.Minute
)

// File permission constants
const (
	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)
