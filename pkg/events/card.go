package events

import (
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Location labels shown on event cards.
const (
	LabelVirtual  = "Virtual Event"
	LabelInPerson = "In Person"
)

var upper = cases.Upper(language.AmericanEnglish)

// Card is the display projection of an event used by the events page.
type Card struct {
	ID            ID     `json:"id"                        yaml:"id"`
	Name          string `json:"name"                      yaml:"name"`
	Month         string `json:"month"                     yaml:"month"`
	Day           int    `json:"day"                       yaml:"day"`
	Weekday       string `json:"weekday"                   yaml:"weekday"`
	Time          string `json:"time"                      yaml:"time"`
	Location      string `json:"location"                  yaml:"location"`
	URL           string `json:"url"                       yaml:"url"`
	CoverImageURL string `json:"cover_image_url,omitempty" yaml:"cover_image_url,omitempty"`
	StartsAt      string `json:"starts_at"                 yaml:"starts_at"`
}

// NewCard builds the card for r with dates rendered in loc.
// It returns false when the start time does not parse.
func NewCard(r Record, loc *time.Location) (Card, bool) {
	if loc == nil {
		loc = time.Local
	}
	start, ok := r.Start(loc)
	if !ok {
		return Card{}, false
	}
	start = start.In(loc)

	return Card{
		ID:            r.ID,
		Name:          r.Name,
		Month:         upper.String(start.Format("Jan")),
		Day:           start.Day(),
		Weekday:       start.Weekday().String(),
		Time:          start.Format("3:04 PM"),
		Location:      LocationLabel(r.LocationType),
		URL:           r.URL,
		CoverImageURL: r.CoverImageURL,
		StartsAt:      r.StartsAt,
	}, true
}

// NewCards builds cards for records, skipping any whose start does not parse.
func NewCards(records []Record, loc *time.Location) []Card {
	cards := make([]Card, 0, len(records))
	for _, r := range records {
		if c, ok := NewCard(r, loc); ok {
			cards = append(cards, c)
		}
	}
	return cards
}

// LocationLabel returns the card label for a location type.
func LocationLabel(locationType string) string {
	if locationType == LocationVirtual {
		return LabelVirtual
	}
	return LabelInPerson
}
