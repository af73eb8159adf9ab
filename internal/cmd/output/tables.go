package output

import (
	"strconv"

	"github.com/fostergreatness/fgsite/pkg/events"
	"github.com/fostergreatness/fgsite/pkg/newsletter"
	"github.com/fostergreatness/fgsite/pkg/videos"
)

// EventsTable renders event cards the way the events page lays them out.
func EventsTable(cards []events.Card) Data {
	rows := make([][]string, 0, len(cards))
	for _, c := range cards {
		rows = append(rows, []string{
			c.Month + " " + strconv.Itoa(c.Day),
			c.Weekday,
			c.Time,
			c.Name,
			c.Location,
			c.URL,
		})
	}
	return Data{
		Headers:         []string{"Date", "Day", "Time", "Event", "Location", "Link"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignLeft, AlignRight, AlignLeft, AlignLeft, AlignLeft},
	}
}

// NewsletterTable renders newsletter posts.
func NewsletterTable(posts []newsletter.PublicPost) Data {
	rows := make([][]string, 0, len(posts))
	for _, p := range posts {
		rows = append(rows, []string{newsletter.Text(p.Title), newsletter.Text(p.Subtitle), newsletter.Text(p.WebURL)})
	}
	return Data{
		Headers: []string{"Title", "Subtitle", "Link"},
		Rows:    rows,
	}
}

// VideosTable renders playlist videos.
func VideosTable(list []videos.Video) Data {
	rows := make([][]string, 0, len(list))
	for _, v := range list {
		rows = append(rows, []string{v.Title, v.Duration, v.DisplayDate(), v.URL})
	}
	return Data{
		Headers:         []string{"Title", "Duration", "Published", "Link"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignRight, AlignLeft, AlignLeft},
	}
}
