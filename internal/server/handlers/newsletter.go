package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/fostergreatness/fgsite/internal/server/cache"
	"github.com/fostergreatness/fgsite/internal/server/response"
	"github.com/fostergreatness/fgsite/pkg/logging"
	"github.com/fostergreatness/fgsite/pkg/newsletter"
)

// HandleNewsletter handles GET /api/newsletter.
func (h *Handlers) HandleNewsletter(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	source := h.app.Newsletter()
	if !source.Configured() {
		logging.FromContext(r.Context()).Error().Msg("Missing BEEHIIV_API_KEY environment variable")
		response.ConfigurationError(w)
		return
	}

	feeds := h.app.Feeds()
	key := "newsletter:posts:" + strconv.Itoa(feeds.NewsletterLimit)
	posts, err := cache.Fetch(r.Context(), h.cache, key, feeds.NewsletterCacheTTL,
		func(ctx context.Context) ([]newsletter.PublicPost, error) {
			return source.FetchRecentPosts(ctx, feeds.NewsletterLimit)
		})
	if err != nil {
		upstreamFailure(w, r, err, "Failed to fetch newsletters", "Newsletter API error")
		return
	}

	if posts == nil {
		posts = []newsletter.PublicPost{}
	}
	response.OK(w, posts)
}
