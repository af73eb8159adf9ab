package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/fostergreatness/fgsite/internal/server/cache"
	"github.com/fostergreatness/fgsite/internal/server/response"
	"github.com/fostergreatness/fgsite/pkg/events"
)

const eventsCacheKey = "events:records"

// HandleEvents handles GET /api/events.
//
// Query parameters: view (listing|preview), limit, format (records|cards).
func (h *Handlers) HandleEvents(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	feeds := h.app.Feeds()
	q := r.URL.Query()

	view, ok := events.ParseView(q.Get("view"))
	if !ok {
		response.BadRequest(w, "Invalid view")
		return
	}
	def := feeds.EventsListingLimit
	if view == events.ViewPreview {
		def = feeds.EventsPreviewLimit
	}
	limit, err := intParam(r, "limit", def, feeds.EventsListingLimit)
	if err != nil {
		response.FromError(w, err, "")
		return
	}
	format := q.Get("format")
	if format != "" && format != "records" && format != "cards" {
		response.BadRequest(w, "Invalid format")
		return
	}

	records, err := cache.Fetch(r.Context(), h.cache, eventsCacheKey, feeds.EventsCacheTTL,
		func(ctx context.Context) ([]events.Record, error) {
			return h.app.Events().FetchRecords(ctx)
		})
	if err != nil {
		upstreamFailure(w, r, err, "Failed to fetch events", "Events API error")
		return
	}

	loc := feeds.EventsLocation
	if loc == nil {
		loc = time.Local
	}
	feed := events.Derive(records, feeds.EventsCategory, h.now().In(loc), limit)

	if format == "cards" {
		response.OK(w, events.NewCards(feed, loc))
		return
	}
	response.OK(w, feed)
}
