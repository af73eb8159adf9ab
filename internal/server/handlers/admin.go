package handlers

import (
	"net/http"
	"runtime"
	"time"

	"github.com/fostergreatness/fgsite/internal/server/response"
)

// HandleStats handles GET /api/admin/stats.
func (h *Handlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	response.OK(w, map[string]any{
		"version": h.app.Version(),
		"commit":  h.app.Commit(),
		"runtime": map[string]any{
			"uptime_seconds": int64(time.Since(h.startTime).Seconds()),
			"goroutines":     runtime.NumGoroutine(),
			"memory_mb":      memStats.Alloc / 1024 / 1024,
			"memory_sys_mb":  memStats.Sys / 1024 / 1024,
		},
		"cache": h.cache.Stats(r.Context()),
	})
}

// HandleCachePurge handles POST /api/admin/cache/purge.
func (h *Handlers) HandleCachePurge(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	before := h.cache.Stats(r.Context()).ItemCount
	if err := h.cache.Clear(r.Context()); err != nil {
		h.logger.Error().Err(err).Str("cache", h.cache.Name()).Msg("Cache purge failed")
		response.InternalError(w)
		return
	}

	h.logger.Info().Int("removed", before).Msg("Response cache purged")
	response.OK(w, map[string]any{
		"status":  "purged",
		"removed": before,
	})
}
