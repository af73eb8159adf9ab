// Package newsletter reads recent posts from the Beehiiv publication and
// reduces them to the public shape the site renders.
package newsletter

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/fostergreatness/fgsite/internal/transport"
	"github.com/fostergreatness/fgsite/pkg/constants"
	"github.com/fostergreatness/fgsite/pkg/errors"
	"github.com/fostergreatness/fgsite/pkg/logging"
)

// Post is a Beehiiv post as returned by the posts endpoint.
// Only fields the site or operators care about are decoded. The public
// fields are pointers so a field missing upstream stays missing.
type Post struct {
	ID           *string  `json:"id"`
	Title        *string  `json:"title"`
	Subtitle     *string  `json:"subtitle"`
	ThumbnailURL *string  `json:"thumbnail_url"`
	WebURL       *string  `json:"web_url"`
	Slug         string   `json:"slug,omitempty"`
	Status       string   `json:"status,omitempty"`
	Audience     string   `json:"audience,omitempty"`
	PublishDate  *int64   `json:"publish_date,omitempty"`
	Authors      []string `json:"authors,omitempty"`
	ContentTags  []string `json:"content_tags,omitempty"`
}

// PublicPost is the reduced post served to the site.
// Fields absent upstream are omitted, never defaulted.
type PublicPost struct {
	ID           *string `json:"id,omitempty"            yaml:"id,omitempty"`
	WebURL       *string `json:"web_url,omitempty"       yaml:"web_url,omitempty"`
	ThumbnailURL *string `json:"thumbnail_url,omitempty" yaml:"thumbnail_url,omitempty"`
	Title        *string `json:"title,omitempty"         yaml:"title,omitempty"`
	Subtitle     *string `json:"subtitle,omitempty"      yaml:"subtitle,omitempty"`
}

// Public reduces p to its public fields.
func (p Post) Public() PublicPost {
	return PublicPost{
		ID:           p.ID,
		WebURL:       p.WebURL,
		ThumbnailURL: p.ThumbnailURL,
		Title:        p.Title,
		Subtitle:     p.Subtitle,
	}
}

// Text returns *s, or "" when s is nil.
func Text(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Config configures a Client.
type Config struct {
	APIKey        string
	PublicationID string
	BaseURL       string
}

// Client reads posts from one Beehiiv publication.
type Client struct {
	transport     *transport.Client
	baseURL       string
	publicationID string
}

// NewClient creates a newsletter client. Empty fields fall back to the
// production publication and API root.
func NewClient(cfg Config, opts ...transport.Option) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = constants.BeehiivBaseURL
	}
	if cfg.PublicationID == "" {
		cfg.PublicationID = constants.BeehiivPublicationID
	}
	return &Client{
		transport:     transport.New(constants.UpstreamBeehiiv, &transport.BearerAuth{}, cfg.APIKey, opts...),
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		publicationID: cfg.PublicationID,
	}
}

// Configured reports whether an API key is set.
func (c *Client) Configured() bool {
	return c.transport.HasKey()
}

// FetchRecentPosts returns up to limit confirmed posts in upstream order.
func (c *Client) FetchRecentPosts(ctx context.Context, limit int) ([]PublicPost, error) {
	if !c.transport.HasKey() {
		return nil, errors.MissingKeyError("newsletter", "BEEHIIV_API_KEY")
	}
	if limit <= 0 {
		return []PublicPost{}, nil
	}

	q := url.Values{}
	q.Set("status", "confirmed")
	q.Set("limit", strconv.Itoa(limit))
	endpoint := fmt.Sprintf("%s/publications/%s/posts?%s", c.baseURL, url.PathEscape(c.publicationID), q.Encode())

	resp, err := c.transport.Get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Data []Post `json:"data"`
	}
	if err := transport.DecodeResponse(resp, constants.UpstreamBeehiiv, &payload); err != nil {
		return nil, err
	}

	posts := payload.Data
	if len(posts) > limit {
		posts = posts[:limit]
	}
	out := make([]PublicPost, len(posts))
	for i, p := range posts {
		out[i] = p.Public()
	}

	logging.FromContext(ctx).Debug().
		Int("posts", len(out)).
		Msg("Fetched newsletter posts")
	return out, nil
}
