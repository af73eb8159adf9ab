package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/fostergreatness/fgsite/internal/server/cache"
	"github.com/fostergreatness/fgsite/internal/server/response"
	"github.com/fostergreatness/fgsite/pkg/constants"
	"github.com/fostergreatness/fgsite/pkg/logging"
	"github.com/fostergreatness/fgsite/pkg/videos"
)

// HandleVideos handles GET /api/videos.
//
// Query parameters: playlist_id (defaults to the configured playlist, others
// must be allow-listed), max_results.
func (h *Handlers) HandleVideos(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	feeds := h.app.Feeds()

	source := h.app.Videos()
	if !source.Configured() {
		logging.FromContext(r.Context()).Error().Msg("Missing YOUTUBE_API_KEY environment variable")
		response.ConfigurationError(w)
		return
	}

	playlistID := r.URL.Query().Get("playlist_id")
	if playlistID == "" {
		playlistID = feeds.PlaylistID
	}
	if playlistID == "" {
		response.BadRequest(w, "Playlist ID is required")
		return
	}
	if !feeds.PlaylistAllowed(playlistID) {
		logging.FromContext(r.Context()).Warn().Str("playlist_id", playlistID).Msg("Rejected playlist")
		response.BadRequest(w, "Playlist not allowed")
		return
	}
	maxResults, err := intParam(r, "max_results", feeds.VideosMaxResults, constants.YouTubeMaxResultsCap)
	if err != nil {
		response.FromError(w, err, "")
		return
	}

	key := "videos:" + playlistID + ":" + strconv.Itoa(maxResults)
	list, err := cache.Fetch(r.Context(), h.cache, key, feeds.VideosCacheTTL,
		func(ctx context.Context) ([]videos.Video, error) {
			return source.FetchPlaylist(ctx, playlistID, maxResults)
		})
	if err != nil {
		upstreamFailure(w, r, err, "Failed to fetch videos", "YouTube API error")
		return
	}

	if list == nil {
		list = []videos.Video{}
	}
	response.OK(w, list)
}
