package app

import (
	"os"
	"strings"
	"time"
	_ "time/tzdata" // events.timezone must resolve in minimal images

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/fostergreatness/fgsite/pkg/constants"
	"github.com/fostergreatness/fgsite/pkg/errors"
	"github.com/fostergreatness/fgsite/pkg/subscription"
)

// Config holds the application configuration loaded from various sources
// including config files, environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string

	// Upstream settings
	HTTPTimeout time.Duration
	Beehiiv     BeehiivConfig
	Newsletter  NewsletterConfig
	Events      EventsConfig
	YouTube     YouTubeConfig
	Subscribe   SubscribeConfig

	// Server settings
	RedisURL    string
	AdminAPIKey string
}

// BeehiivConfig holds the newsletter platform credentials.
type BeehiivConfig struct {
	APIKey        string
	PublicationID string
	BaseURL       string
}

// NewsletterConfig holds the newsletter feed settings.
type NewsletterConfig struct {
	Limit    int
	CacheTTL time.Duration
}

// EventsConfig holds the events feed settings.
type EventsConfig struct {
	SourceURL    string
	Category     string
	Timezone     string
	ListingLimit int
	PreviewLimit int
	CacheTTL     time.Duration
}

// YouTubeConfig holds the playlist settings.
type YouTubeConfig struct {
	APIKey     string
	PlaylistID string
	// AllowedPlaylists are served by the API in addition to PlaylistID.
	AllowedPlaylists []string
	BaseURL          string
	MaxResults       int
	CacheTTL         time.Duration
}

// SubscribeConfig holds signup attribution.
type SubscribeConfig struct {
	Attribution subscription.Attribution
	Profiles    map[string]subscription.Attribution
}

// setDefaults registers the default for every configuration key.
func setDefaults(v *viper.Viper) {
	v.SetDefault("beehiiv.publication_id", constants.BeehiivPublicationID)
	v.SetDefault("beehiiv.base_url", constants.BeehiivBaseURL)

	v.SetDefault("newsletter.limit", constants.NewsletterLimit)
	v.SetDefault("newsletter.cache_ttl", constants.NewsletterCacheTTL)

	v.SetDefault("events.source_url", constants.EventsSourceURL)
	v.SetDefault("events.category", constants.DefaultEventsCategory)
	v.SetDefault("events.timezone", "Local")
	v.SetDefault("events.listing_limit", constants.EventsListingLimit)
	v.SetDefault("events.preview_limit", constants.EventsPreviewLimit)
	v.SetDefault("events.cache_ttl", constants.EventsCacheTTL)

	v.SetDefault("youtube.base_url", constants.YouTubeBaseURL)
	v.SetDefault("youtube.max_results", constants.YouTubeMaxResults)
	v.SetDefault("youtube.cache_ttl", constants.VideosCacheTTL)

	v.SetDefault("subscribe.referring_site", constants.DefaultReferringSite)
	v.SetDefault("subscribe.utm_source", constants.DefaultUTMSource)
	v.SetDefault("subscribe.utm_medium", constants.DefaultUTMMedium)
	v.SetDefault("subscribe.utm_campaign", constants.DefaultUTMCampaign)

	v.SetDefault("http.timeout", constants.DefaultHTTPTimeout)

	v.SetDefault("log.format", "auto")
	v.SetDefault("log.output", "stderr")
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables
// 3. .env files
// 4. Config file (~/.fgsite.yaml, ./.fgsite.yaml, or configFile)
// 5. Defaults
func LoadConfig(configFile string) (*Config, error) {
	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.NewConfigError("config", "reading "+configFile, err)
		}
	} else {
		v.SetConfigType("yaml")
		v.SetConfigName(".fgsite")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		// A missing config file is fine.
		_ = v.ReadInConfig()
	}

	profiles := map[string]subscription.Attribution{}
	if err := v.UnmarshalKey("subscribe.profiles", &profiles); err != nil {
		return nil, errors.NewConfigError("subscribe", "invalid attribution profiles", err)
	}

	config := &Config{
		Verbose: v.GetBool("verbose"),
		Quiet:   v.GetBool("quiet"),
		NoColor: v.GetBool("no_color"),
		Format:  v.GetString("format"),

		ConfigFile: v.ConfigFileUsed(),

		// An empty level lets -v/-q decide.
		LogLevel:  v.GetString("log.level"),
		LogFormat: v.GetString("log.format"),
		LogOutput: v.GetString("log.output"),

		HTTPTimeout: v.GetDuration("http.timeout"),
		Beehiiv: BeehiivConfig{
			APIKey:        v.GetString("beehiiv.api_key"),
			PublicationID: v.GetString("beehiiv.publication_id"),
			BaseURL:       v.GetString("beehiiv.base_url"),
		},
		Newsletter: NewsletterConfig{
			Limit:    v.GetInt("newsletter.limit"),
			CacheTTL: v.GetDuration("newsletter.cache_ttl"),
		},
		Events: EventsConfig{
			SourceURL:    v.GetString("events.source_url"),
			Category:     v.GetString("events.category"),
			Timezone:     v.GetString("events.timezone"),
			ListingLimit: v.GetInt("events.listing_limit"),
			PreviewLimit: v.GetInt("events.preview_limit"),
			CacheTTL:     v.GetDuration("events.cache_ttl"),
		},
		YouTube: YouTubeConfig{
			APIKey:           v.GetString("youtube.api_key"),
			PlaylistID:       v.GetString("youtube.playlist_id"),
			AllowedPlaylists: splitList(v.GetStringSlice("youtube.allowed_playlists")),
			BaseURL:          v.GetString("youtube.base_url"),
			MaxResults:       v.GetInt("youtube.max_results"),
			CacheTTL:         v.GetDuration("youtube.cache_ttl"),
		},
		Subscribe: SubscribeConfig{
			Attribution: subscription.Attribution{
				ReferringSite: v.GetString("subscribe.referring_site"),
				UTMSource:     v.GetString("subscribe.utm_source"),
				UTMMedium:     v.GetString("subscribe.utm_medium"),
				UTMCampaign:   v.GetString("subscribe.utm_campaign"),
			},
			Profiles: profiles,
		},
		RedisURL:    v.GetString("redis.url"),
		AdminAPIKey: v.GetString("admin.api_key"),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks values that would otherwise fail at request time.
func (c *Config) Validate() error {
	if _, err := c.Location(); err != nil {
		return errors.NewConfigError("events", "unknown timezone "+c.Events.Timezone, err)
	}
	if c.Events.ListingLimit < 1 || c.Events.PreviewLimit < 1 || c.Newsletter.Limit < 1 {
		return errors.NewConfigError("feeds", "limits must be positive", nil)
	}
	if c.YouTube.MaxResults < 1 || c.YouTube.MaxResults > constants.YouTubeMaxResultsCap {
		return errors.NewConfigError("youtube", "max_results must be between 1 and 50", nil)
	}
	if c.HTTPTimeout <= 0 {
		return errors.NewConfigError("http", "timeout must be positive", nil)
	}
	return nil
}

// Location returns the zone used to decide which events are upcoming.
func (c *Config) Location() (*time.Location, error) {
	if c.Events.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Events.Timezone)
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags to ensure flag
// values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// loadEnvFiles loads environment variables from .env files. godotenv never
// overrides a variable that is already set, so .env.local is loaded first
// to win over .env.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}

// splitList flattens comma-separated entries, as environment values arrive
// as one string.
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, item := range strings.Split(v, ",") {
			if item = strings.TrimSpace(item); item != "" {
				out = append(out, item)
			}
		}
	}
	return out
}
