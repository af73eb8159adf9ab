// Package events derives the upcoming community events feed shown on the site.
//
// Raw records come from the Circle events widget endpoint. Derive filters
// them to one community space and to events that have not yet passed,
// orders them chronologically and caps the result.
package events

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// LocationVirtual is the only location type with special display handling.
const LocationVirtual = "virtual"

// ID is an opaque event identifier. Upstream sends numbers or strings;
// numbers are kept as their decimal text.
type ID string

// UnmarshalJSON accepts a JSON string or number.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

// Space is the community space an event belongs to.
type Space struct {
	Slug string `json:"slug"           yaml:"slug"`
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
}

// Record is a single event as published by the events source.
type Record struct {
	ID            ID     `json:"id"                        yaml:"id"`
	Name          string `json:"name"                      yaml:"name"`
	StartsAt      string `json:"starts_at"                 yaml:"starts_at"`
	URL           string `json:"url"                       yaml:"url"`
	LocationType  string `json:"location_type"             yaml:"location_type"`
	Space         *Space `json:"space,omitempty"           yaml:"space,omitempty"`
	CoverImageURL string `json:"cover_image_url,omitempty" yaml:"cover_image_url,omitempty"`
	Host          string `json:"host,omitempty"            yaml:"host,omitempty"`
	MemberName    string `json:"member_name,omitempty"     yaml:"member_name,omitempty"`
}

// SpaceSlug returns the space slug, or "" when the record has no space.
func (r Record) SpaceSlug() string {
	if r.Space == nil {
		return ""
	}
	return r.Space.Slug
}

// IsVirtual reports whether the event takes place online.
func (r Record) IsVirtual() bool {
	return r.LocationType == LocationVirtual
}

// Start parses StartsAt, reading a zone-less date-time in loc.
// The second result is false when it does not parse.
func (r Record) Start(loc *time.Location) (time.Time, bool) {
	return ParseTime(r.StartsAt, loc)
}

// accepted timestamp layouts, most specific first
var (
	zonedLayouts = []string{time.RFC3339Nano, time.RFC3339}
	localLayouts = []string{
		"2006-01-02T15:04:05.999999999",
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
	}
)

// ParseTime parses an ISO 8601 event timestamp. A date-time without an
// offset is local time in loc (UTC when loc is nil); a bare date is UTC
// midnight.
func ParseTime(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, true
	}
	// Unix seconds are occasionally seen from older widget versions.
	if secs, err := strconv.ParseInt(s, 10, 64); err == nil && secs > 0 {
		return time.Unix(secs, 0).UTC(), true
	}
	return time.Time{}, false
}
