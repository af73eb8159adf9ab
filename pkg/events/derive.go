package events

import (
	"sort"
	"time"
)

// View selects one of the site's feed sizes.
type View string

// Feed views.
const (
	ViewListing View = "listing"
	ViewPreview View = "preview"
)

// ParseView parses a view name. Empty input means ViewListing.
func ParseView(s string) (View, bool) {
	switch View(s) {
	case "", ViewListing:
		return ViewListing, true
	case ViewPreview:
		return ViewPreview, true
	}
	return "", false
}

// Derive returns the upcoming events of one category.
//
// A record is kept when its space slug equals category exactly and its start
// falls on or after the calendar day of reference. Days are computed in
// reference's location, which is also the zone of starts without an offset.
// Records whose start does not parse are dropped.
// The result is sorted by start time, ties in input order, and holds at most
// limit records. records is never modified.
func Derive(records []Record, category string, reference time.Time, limit int) []Record {
	if limit <= 0 {
		return []Record{}
	}

	loc := reference.Location()
	today := StartOfDay(reference, loc)

	type candidate struct {
		record Record
		start  time.Time
	}
	kept := make([]candidate, 0, len(records))
	for _, r := range records {
		if r.SpaceSlug() != category {
			continue
		}
		start, ok := r.Start(loc)
		if !ok {
			continue
		}
		if StartOfDay(start, loc).Before(today) {
			continue
		}
		kept = append(kept, candidate{record: r, start: start})
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].start.Before(kept[j].start)
	})

	if len(kept) > limit {
		kept = kept[:limit]
	}
	out := make([]Record, len(kept))
	for i, c := range kept {
		out[i] = c.record
	}
	return out
}

// StartOfDay returns midnight of t's calendar day in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
