package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fostergreatness/fgsite/pkg/events"
	"github.com/fostergreatness/fgsite/pkg/videos"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"json", FormatJSON, false},
		{"YAML", FormatYAML, false},
		{"table", FormatTable, false},
		{"", "", false},
		{"wide", "", true},
		{"xml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectFormatExplicit(t *testing.T) {
	assert.Equal(t, FormatYAML, DetectFormat("Yaml"))
}

func TestJSONAndYAML(t *testing.T) {
	data := []videos.Video{{ID: "v1", Title: "Welcome", Duration: "3:05"}}

	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatJSON).Format(&buf, data))
	assert.Contains(t, buf.String(), `"title": "Welcome"`)

	buf.Reset()
	require.NoError(t, NewFormatter(FormatYAML).Format(&buf, data))
	assert.Contains(t, buf.String(), "title: Welcome")
}

func TestTableFromData(t *testing.T) {
	cards := []events.Card{{
		Name: "Storytelling Lab", Month: "OCT", Day: 16, Weekday: "Friday",
		Time: "6:30 PM", Location: events.LabelVirtual, URL: "https://events.example/1",
	}}

	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatTable).Format(&buf, EventsTable(cards)))
	out := buf.String()
	assert.Contains(t, out, "OCT 16")
	assert.Contains(t, out, "Storytelling Lab")
	assert.Contains(t, out, "Virtual Event")
}

func TestTableByReflection(t *testing.T) {
	type row struct {
		CoverImage string `json:"cover_image,omitempty"`
		Name       string
	}

	var buf bytes.Buffer
	require.NoError(t, (&TableFormatter{}).Format(&buf, []row{{CoverImage: "a.png", Name: "x"}}))
	out := strings.ToUpper(buf.String())
	assert.Contains(t, out, "COVER IMAGE")
	assert.Contains(t, out, "A.PNG")
}

func TestTableFallsBackToJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&TableFormatter{}).Format(&buf, map[string]int{"n": 1}))
	assert.JSONEq(t, `{"n":1}`, buf.String())
}

func TestRender(t *testing.T) {
	tbl := &Data{Headers: []string{"Name"}, Rows: [][]string{{"custom-row"}}}
	data := []videos.Video{{Title: "from-data"}}

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, FormatTable, data, tbl))
	assert.Contains(t, buf.String(), "custom-row")

	buf.Reset()
	require.NoError(t, Render(&buf, FormatJSON, data, tbl))
	assert.Contains(t, buf.String(), "from-data")
}
