package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fostergreatness/fgsite/pkg/errors"
	"github.com/fostergreatness/fgsite/pkg/events"
)

func upcomingRecords(n int) []events.Record {
	records := make([]events.Record, 0, n+2)
	for i := n; i > 0; i-- {
		records = append(records, events.Record{
			ID:           events.ID(fmt.Sprintf("e%d", i)),
			Name:         fmt.Sprintf("Event %d", i),
			StartsAt:     testNow.AddDate(0, 0, i).Format("2006-01-02T15:04:05Z"),
			LocationType: events.LocationVirtual,
			Space:        &events.Space{Slug: "events"},
		})
	}
	records = append(records,
		events.Record{ID: "past", StartsAt: "2026-10-14T23:00:00Z", Space: &events.Space{Slug: "events"}},
		events.Record{ID: "other", StartsAt: "2026-10-20T10:00:00Z", Space: &events.Space{Slug: "general"}},
	)
	return records
}

func decodeRecords(t *testing.T, body []byte) []events.Record {
	t.Helper()
	var got []events.Record
	require.NoError(t, json.Unmarshal(body, &got))
	return got
}

func TestHandleEventsListing(t *testing.T) {
	f := newFixture()
	f.events.records = upcomingRecords(15)
	h := f.handlers()

	w := serve(h.HandleEvents, http.MethodGet, "/api/events", "")
	require.Equal(t, http.StatusOK, w.Code)

	got := decodeRecords(t, w.Body.Bytes())
	require.Len(t, got, 12)
	assert.Equal(t, events.ID("e1"), got[0].ID)
	assert.Equal(t, events.ID("e12"), got[11].ID)
}

func TestHandleEventsPreviewAndLimit(t *testing.T) {
	f := newFixture()
	f.events.records = upcomingRecords(15)
	h := f.handlers()

	w := serve(h.HandleEvents, http.MethodGet, "/api/events?view=preview", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeRecords(t, w.Body.Bytes()), 3)

	w = serve(h.HandleEvents, http.MethodGet, "/api/events?limit=5", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeRecords(t, w.Body.Bytes()), 5)

	// Raw records are cached across views.
	assert.Equal(t, 1, f.events.calls)
}

func TestHandleEventsCards(t *testing.T) {
	f := newFixture()
	f.events.records = upcomingRecords(2)
	h := f.handlers()

	w := serve(h.HandleEvents, http.MethodGet, "/api/events?format=cards", "")
	require.Equal(t, http.StatusOK, w.Code)

	var cards []events.Card
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cards))
	require.Len(t, cards, 2)
	assert.Equal(t, "OCT", cards[0].Month)
	assert.Equal(t, events.LabelVirtual, cards[0].Location)
}

func TestHandleEventsBadParams(t *testing.T) {
	h := newFixture().handlers()

	for _, target := range []string{
		"/api/events?view=grid",
		"/api/events?limit=0",
		"/api/events?limit=99",
		"/api/events?format=xml",
	} {
		t.Run(target, func(t *testing.T) {
			w := serve(h.HandleEvents, http.MethodGet, target, "")
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestHandleEventsUpstreamFailure(t *testing.T) {
	f := newFixture()
	f.events.err = errors.NewAPIError("events", http.StatusBadGateway, "bad gateway")
	h := f.handlers()

	w := serve(h.HandleEvents, http.MethodGet, "/api/events", "")
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "Failed to fetch events", errorMessage(t, w))

	f.events.err = errors.New("dial tcp: refused")
	w = serve(h.HandleEvents, http.MethodGet, "/api/events", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal server error", errorMessage(t, w))
}
