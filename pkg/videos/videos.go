// Package videos aggregates a YouTube playlist into the video cards shown on
// the Storytellers Collective page.
package videos

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/fostergreatness/fgsite/internal/transport"
	"github.com/fostergreatness/fgsite/pkg/constants"
	"github.com/fostergreatness/fgsite/pkg/errors"
	"github.com/fostergreatness/fgsite/pkg/logging"
)

// UnknownDuration is shown when a video's duration is missing or malformed.
const UnknownDuration = "N/A"

// Video is one playlist entry.
type Video struct {
	ID          string `json:"id"          yaml:"id"`
	Title       string `json:"title"       yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Thumbnail   string `json:"thumbnail"   yaml:"thumbnail"`
	Duration    string `json:"duration"    yaml:"duration"`
	Date        string `json:"date"        yaml:"date"`
	URL         string `json:"url"         yaml:"url"`
}

// DisplayDate renders Date as "Jan 2, 2006", or "" when it does not parse.
func (v Video) DisplayDate() string {
	t, err := time.Parse(time.RFC3339, v.Date)
	if err != nil {
		return ""
	}
	return t.Format("Jan 2, 2006")
}

type thumbnail struct {
	URL string `json:"url"`
}

type playlistItemsResponse struct {
	Items []struct {
		Snippet struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			PublishedAt string `json:"publishedAt"`
			Thumbnails  struct {
				Default *thumbnail `json:"default"`
				Medium  *thumbnail `json:"medium"`
			} `json:"thumbnails"`
			ResourceID struct {
				VideoID string `json:"videoId"`
			} `json:"resourceId"`
		} `json:"snippet"`
	} `json:"items"`
}

type videosResponse struct {
	Items []struct {
		ID             string `json:"id"`
		ContentDetails struct {
			Duration string `json:"duration"`
		} `json:"contentDetails"`
	} `json:"items"`
}

// Config configures a Client.
type Config struct {
	APIKey  string
	BaseURL string
}

// Client reads playlists from the YouTube Data API.
type Client struct {
	transport *transport.Client
	baseURL   string
}

// NewClient creates a videos client.
func NewClient(cfg Config, opts ...transport.Option) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = constants.YouTubeBaseURL
	}
	return &Client{
		transport: transport.New(constants.UpstreamYouTube, &transport.QueryAuth{Param: "key"}, cfg.APIKey, opts...),
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
	}
}

// Configured reports whether an API key is set.
func (c *Client) Configured() bool {
	return c.transport.HasKey()
}

// FetchPlaylist returns up to maxResults videos of a playlist in playlist order.
func (c *Client) FetchPlaylist(ctx context.Context, playlistID string, maxResults int) ([]Video, error) {
	if !c.transport.HasKey() {
		return nil, errors.MissingKeyError("videos", "YOUTUBE_API_KEY")
	}
	if playlistID == "" {
		return nil, errors.NewValidationError("playlist_id", playlistID, "playlist id is required")
	}
	if maxResults <= 0 {
		maxResults = constants.YouTubeMaxResults
	}
	if maxResults > constants.YouTubeMaxResultsCap {
		maxResults = constants.YouTubeMaxResultsCap
	}

	q := url.Values{}
	q.Set("part", "snippet")
	q.Set("playlistId", playlistID)
	q.Set("maxResults", strconv.Itoa(maxResults))
	resp, err := c.transport.Get(ctx, c.baseURL+"/playlistItems?"+q.Encode())
	if err != nil {
		return nil, err
	}
	var playlist playlistItemsResponse
	if err := transport.DecodeResponse(resp, constants.UpstreamYouTube, &playlist); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(playlist.Items))
	for _, item := range playlist.Items {
		if id := item.Snippet.ResourceID.VideoID; id != "" {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		logging.FromContext(ctx).Debug().Str("playlist_id", playlistID).Msg("Playlist has no videos")
		return []Video{}, nil
	}

	durations, err := c.fetchDurations(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]Video, 0, len(ids))
	for _, item := range playlist.Items {
		s := item.Snippet
		id := s.ResourceID.VideoID
		if id == "" {
			continue
		}
		duration, ok := durations[id]
		if !ok {
			duration = UnknownDuration
		}
		out = append(out, Video{
			ID:          id,
			Title:       s.Title,
			Description: s.Description,
			Thumbnail:   pickThumbnail(s.Thumbnails.Medium, s.Thumbnails.Default),
			Duration:    duration,
			Date:        s.PublishedAt,
			URL:         constants.YouTubeWatchURL + id,
		})
	}

	logging.FromContext(ctx).Debug().
		Str("playlist_id", playlistID).
		Int("videos", len(out)).
		Msg("Fetched playlist")
	return out, nil
}

// fetchDurations maps video ids to formatted durations.
func (c *Client) fetchDurations(ctx context.Context, ids []string) (map[string]string, error) {
	q := url.Values{}
	q.Set("part", "contentDetails")
	q.Set("id", strings.Join(ids, ","))
	resp, err := c.transport.Get(ctx, c.baseURL+"/videos?"+q.Encode())
	if err != nil {
		return nil, err
	}
	var details videosResponse
	if err := transport.DecodeResponse(resp, constants.UpstreamYouTube, &details); err != nil {
		return nil, err
	}

	out := make(map[string]string, len(details.Items))
	for _, v := range details.Items {
		out[v.ID] = FormatDuration(v.ContentDetails.Duration)
	}
	return out, nil
}

func pickThumbnail(candidates ...*thumbnail) string {
	for _, t := range candidates {
		if t != nil && t.URL != "" {
			return t.URL
		}
	}
	return ""
}

var durationPattern = regexp.MustCompile(`PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?`)

// FormatDuration renders an ISO 8601 duration such as "PT1H2M3S" as "1:02:03",
// or "PT4M5S" as "4:05". Anything else yields UnknownDuration.
func FormatDuration(iso string) string {
	m := durationPattern.FindStringSubmatch(iso)
	if m == nil {
		return UnknownDuration
	}
	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	seconds, _ := strconv.Atoi(m[3])

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}
