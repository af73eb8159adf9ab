package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fostergreatness/fgsite/pkg/constants"
	"github.com/fostergreatness/fgsite/pkg/errors"
	"github.com/fostergreatness/fgsite/pkg/subscription"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fgsite.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), constants.FilePermissions))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	config, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, constants.BeehiivPublicationID, config.Beehiiv.PublicationID)
	assert.Equal(t, constants.BeehiivBaseURL, config.Beehiiv.BaseURL)
	assert.Equal(t, 3, config.Newsletter.Limit)
	assert.Equal(t, time.Hour, config.Newsletter.CacheTTL)
	assert.Equal(t, "general-events", config.Events.Category)
	assert.Equal(t, 12, config.Events.ListingLimit)
	assert.Equal(t, 3, config.Events.PreviewLimit)
	assert.Equal(t, 10, config.YouTube.MaxResults)
	assert.Equal(t, 15*time.Second, config.HTTPTimeout)
	assert.Equal(t, subscription.DefaultAttribution(), config.Subscribe.Attribution)
	assert.Equal(t, "auto", config.LogFormat)
}

func TestLoadConfigEnvironment(t *testing.T) {
	t.Setenv("BEEHIIV_API_KEY", "env-key")
	t.Setenv("EVENTS_CATEGORY", "workshops")
	t.Setenv("NEWSLETTER_CACHE_TTL", "10m")
	t.Setenv("SUBSCRIBE_UTM_CAMPAIGN", "autumn")
	t.Setenv("REDIS_URL", "redis://localhost:6379/1")
	t.Setenv("YOUTUBE_ALLOWED_PLAYLISTS", "PL-a, PL-b")

	config, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "env-key", config.Beehiiv.APIKey)
	assert.Equal(t, "workshops", config.Events.Category)
	assert.Equal(t, 10*time.Minute, config.Newsletter.CacheTTL)
	assert.Equal(t, "autumn", config.Subscribe.Attribution.UTMCampaign)
	assert.Equal(t, "redis://localhost:6379/1", config.RedisURL)
	assert.Equal(t, []string{"PL-a", "PL-b"}, config.YouTube.AllowedPlaylists)
}

func TestLoadConfigFile(t *testing.T) {
	path := writeConfig(t, `
beehiiv:
  api_key: file-key
events:
  timezone: America/Chicago
  listing_limit: 6
subscribe:
  utm_campaign: spring
  profiles:
    footer:
      utm_medium: footer_form
`)
	t.Setenv("BEEHIIV_API_KEY", "env-key")

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, path, config.ConfigFile)
	assert.Equal(t, "env-key", config.Beehiiv.APIKey, "environment wins over the file")
	assert.Equal(t, 6, config.Events.ListingLimit)
	assert.Equal(t, "spring", config.Subscribe.Attribution.UTMCampaign)
	assert.Equal(t, "footer_form", config.Subscribe.Profiles["footer"].UTMMedium)

	loc, err := config.Location()
	require.NoError(t, err)
	assert.Equal(t, "America/Chicago", loc.String())
}

func TestLoadConfigInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown timezone", "events:\n  timezone: Mars/Olympus\n"},
		{"zero limit", "newsletter:\n  limit: 0\n"},
		{"max results over cap", "youtube:\n  max_results: 51\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.body))
			require.Error(t, err)
			var cfgErr *errors.ConfigError
			assert.True(t, errors.As(err, &cfgErr))
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestUpdateFromFlags(t *testing.T) {
	config := &Config{Format: "yaml", LogLevel: "warn"}

	config.UpdateFromFlags(true, false, true, "", "")
	assert.True(t, config.Verbose)
	assert.True(t, config.NoColor)
	assert.Equal(t, "yaml", config.Format)
	assert.Equal(t, "warn", config.LogLevel)

	config.UpdateFromFlags(false, false, false, "json", "debug")
	assert.Equal(t, "json", config.Format)
	assert.Equal(t, "debug", config.LogLevel)
}
