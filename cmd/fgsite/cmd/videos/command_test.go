package videos

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	app "github.com/fostergreatness/fgsite/cmd/application"
	mockapp "github.com/fostergreatness/fgsite/internal/cmd/application"
	"github.com/fostergreatness/fgsite/pkg/videos"
)

type fakePlaylist struct {
	playlist string
	max      int
}

func (f *fakePlaylist) FetchPlaylist(_ context.Context, playlistID string, maxResults int) ([]videos.Video, error) {
	f.playlist, f.max = playlistID, maxResults
	return []videos.Video{{ID: "v1", Title: "Welcome", Duration: "3:05", Date: "2026-09-01T12:00:00Z"}}, nil
}

func (f *fakePlaylist) Configured() bool { return true }

func TestVideosCommand(t *testing.T) {
	source := &fakePlaylist{}
	mock := &mockapp.Mock{
		VideosFunc: func() app.VideoSource { return source },
		FeedsFunc: func() app.Feeds {
			feeds := mockapp.DefaultFeeds()
			feeds.PlaylistID = "PL-config"
			return feeds
		},
		OutputFormatFunc: func() string { return "table" },
	}

	cmd := NewCommand(mock)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--max", "5"})
	require.NoError(t, cmd.Execute())

	assert.Equal(t, "PL-config", source.playlist)
	assert.Equal(t, 5, source.max)
	assert.Contains(t, out.String(), "Welcome")
	assert.Contains(t, out.String(), "Sep 1, 2026")
}
