package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCard(t *testing.T) {
	loc := time.FixedZone("PDT", -7*3600)
	r := Record{
		ID:            "42",
		Name:          "Storytelling Workshop",
		StartsAt:      "2026-10-21T01:30:00Z",
		URL:           "https://community.example.org/events/42",
		LocationType:  "virtual",
		CoverImageURL: "https://cdn.example.org/42.png",
	}

	card, ok := NewCard(r, loc)
	require.True(t, ok)
	assert.Equal(t, "OCT", card.Month)
	assert.Equal(t, 20, card.Day)
	assert.Equal(t, "Tuesday", card.Weekday)
	assert.Equal(t, "6:30 PM", card.Time)
	assert.Equal(t, LabelVirtual, card.Location)
	assert.Equal(t, r.CoverImageURL, card.CoverImageURL)
	assert.Equal(t, r.StartsAt, card.StartsAt)
}

func TestNewCards(t *testing.T) {
	records := []Record{
		{ID: "1", StartsAt: "2026-12-01T09:05:00Z", LocationType: "in_person"},
		{ID: "2", StartsAt: "tbd"},
	}
	cards := NewCards(records, time.UTC)
	require.Len(t, cards, 1)
	assert.Equal(t, "DEC", cards[0].Month)
	assert.Equal(t, "9:05 AM", cards[0].Time)
	assert.Equal(t, LabelInPerson, cards[0].Location)
}

func TestLocationLabel(t *testing.T) {
	assert.Equal(t, LabelVirtual, LocationLabel("virtual"))
	assert.Equal(t, LabelInPerson, LocationLabel("in_person"))
	assert.Equal(t, LabelInPerson, LocationLabel(""))
}
